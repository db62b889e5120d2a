// Command portal_probe fetches the two portal pages with the configured
// credentials-free session and reports what the parsers extract from them.
// It is a development aid for checking table identifiers against a live or
// mirrored portal before pointing the service at it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/internal/parser"
	"github.com/noah-isme/ssp-overtime-api/internal/portal"
	"github.com/noah-isme/ssp-overtime-api/internal/service"
	"github.com/noah-isme/ssp-overtime-api/pkg/config"
)

func main() {
	var (
		jsonOut = flag.Bool("json", false, "print the reconciled records as JSON")
		timeout = flag.Duration("timeout", 30*time.Second, "overall probe timeout")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logr, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	client := portal.NewClient(portal.ClientParams{Config: cfg.Portal, Logger: logr})
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	attendanceHTML, err := client.FetchAttendancePage(ctx)
	if err != nil {
		log.Fatalf("fetch attendance page: %v", err)
	}
	personalHTML, err := client.FetchPersonalPage(ctx)
	if err != nil {
		log.Fatalf("fetch personal page: %v", err)
	}

	attendance := parser.NewAttendanceParser(logr)
	personal := parser.NewPersonalParser(logr)

	punches := attendance.PunchRecords(attendanceHTML)
	leaves := attendance.LeaveRecords(attendanceHTML)
	quota := attendance.Quota(attendanceHTML)
	anomalies := attendance.AnomalyRecords(attendanceHTML)
	personals := personal.Records(personalHTML)

	fmt.Printf("punch dates:    %d\n", len(punches))
	fmt.Printf("leave rows:     %d\n", len(leaves))
	fmt.Printf("quota present:  %v\n", quota != nil)
	fmt.Printf("anomaly rows:   %d\n", len(anomalies))
	fmt.Printf("personal rows:  %d\n", len(personals))

	calculator := service.NewOvertimeCalculator(cfg.Policy, logr)
	reconciler := service.NewReconciler(calculator, logr)
	unified := reconciler.Reconcile(anomalies, personals)
	fmt.Printf("unified rows:   %d\n", len(unified))

	if *jsonOut {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(unified); err != nil {
			log.Fatalf("encode records: %v", err)
		}
	}
}
