package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ssp-overtime-api/internal/models"
)

const attendancePage = `
<html><body>
<table id="ContentPlaceHolder1_gvNotes005">
  <tr><th>刷卡日期</th><th>刷卡時間</th></tr>
  <tr class="RowStyle"><td>2025/12/01</td><td>19:32:10</td></tr>
  <tr class="AlternatingRowStyle_update"><td>2025/12/01</td><td>09:02:32</td></tr>
  <tr class="RowStyle"><td>2025/12/02</td><td>08:55:00</td></tr>
  <tr class="PagerStyle"><td><a href="#">2</a></td><td></td></tr>
</table>
<table id="ContentPlaceHolder1_gvNotes011">
  <tr><th>假別</th><th>統計</th></tr>
  <tr class="RowStyle">
    <td>114年公出</td>
    <td><span id="ContentPlaceHolder1_gvNotes011_lblAbsenceDay_0"> 18 天</span>
        <span id="ContentPlaceHolder1_gvNotes011_lblAbsenceHour_0"> 0 小時</span></td>
  </tr>
  <tr class="AlternatingRowStyle_update">
    <td>114年特休</td>
    <td><span id="ContentPlaceHolder1_gvNotes011_lblAbsenceDay_1"> 2 天</span>
        <span id="ContentPlaceHolder1_gvNotes011_lblAbsenceHour_1"> 4 小時</span></td>
  </tr>
  <tr class="RowStyle">
    <td>114年病假</td>
    <td><span id="ContentPlaceHolder1_gvNotes011_lblAbsenceDay_2"> 0 天</span>
        <span id="ContentPlaceHolder1_gvNotes011_lblAbsenceHour_2"> 0 小時</span></td>
  </tr>
</table>
<table id="ContentPlaceHolder1_dvNotes019">
  <tr><td>年度特休可用：3 天</td></tr>
  <tr><td>目前特休剩餘：1 天</td></tr>
  <tr><td>目前調休剩餘：8 天</td></tr>
  <tr><td>未達加班換休最低申請時限： 1 小時 33 分鐘</td></tr>
</table>
<table id="ContentPlaceHolder1_gvWeb012">
  <tr><th>日期</th><th>工時</th><th>異常說明</th></tr>
  <tr class="RowStyle">
    <td><span id="ContentPlaceHolder1_gvWeb012_lblWork_Date_0">2025/11/28</span><br>
        <span id="ContentPlaceHolder1_gvWeb012_lblCard_Time_0">  09:00:15~19:31:09  </span></td>
    <td><span id="ContentPlaceHolder1_gvWeb012_lblLose_Manhour_0">90</span></td>
    <td>下班刷卡超出正常下班時刻</td>
    <td></td>
  </tr>
  <tr class="AlternatingRowStyle_update">
    <td><span id="ContentPlaceHolder1_gvWeb012_lblWork_Date_1">2025/11/27</span><br>
        <span id="ContentPlaceHolder1_gvWeb012_lblCard_Time_1"></span></td>
    <td><span id="ContentPlaceHolder1_gvWeb012_lblLose_Manhour_1"></span></td>
    <td>忘記刷卡</td>
    <td></td>
  </tr>
  <tr class="PagerStyle"><td colspan="4"><a href="#">2</a></td></tr>
</table>
</body></html>`

func TestAttendanceParserPunchRecords(t *testing.T) {
	p := NewAttendanceParser(zap.NewNop())

	records := p.PunchRecords(attendancePage)
	require.Len(t, records, 2)

	assert.Equal(t, "2025/12/01", records[0].Date)
	assert.Equal(t, []string{"09:02:32", "19:32:10"}, records[0].PunchTimes, "punches on one date are merged and sorted")
	assert.Equal(t, "2025/12/02", records[1].Date)
	assert.Equal(t, 1, records[1].PunchCount())
}

func TestAttendanceParserLeaveRecords(t *testing.T) {
	p := NewAttendanceParser(zap.NewNop())

	records := p.LeaveRecords(attendancePage)
	require.Len(t, records, 2, "zero-valued leave rows are dropped")

	assert.Equal(t, models.LeaveRecord{LeaveType: "114年公出", Days: 18, Hours: 0}, records[0])
	assert.Equal(t, models.LeaveRecord{LeaveType: "114年特休", Days: 2, Hours: 4}, records[1])
	assert.True(t, records[1].IsAnnualLeave())
	assert.InDelta(t, 20.0, records[1].TotalHours(), 1e-9)
}

func TestAttendanceParserQuota(t *testing.T) {
	p := NewAttendanceParser(zap.NewNop())

	quota := p.Quota(attendancePage)
	require.NotNil(t, quota)

	assert.Equal(t, 1, quota.AnnualLeaveDays)
	assert.Equal(t, 8, quota.CompensatoryLeaveDays)
	assert.Equal(t, 93, quota.ThresholdMinutes)
	assert.InDelta(t, 1.55, quota.ThresholdHours(), 1e-9)
}

func TestAttendanceParserQuotaMinutesOnlyThreshold(t *testing.T) {
	p := NewAttendanceParser(zap.NewNop())

	html := `<table id="ContentPlaceHolder1_dvNotes019">
		<tr><td>未達加班換休最低申請時限： 45 分鐘</td></tr>
	</table>`

	quota := p.Quota(html)
	require.NotNil(t, quota)
	assert.Equal(t, 45, quota.ThresholdMinutes)
}

func TestAttendanceParserAnomalyRecords(t *testing.T) {
	p := NewAttendanceParser(zap.NewNop())

	records := p.AnomalyRecords(attendancePage)
	require.Len(t, records, 2)

	assert.Equal(t, "2025/11/28", records[0].Date)
	assert.Equal(t, "09:00:15~19:31:09", records[0].PunchRange)
	assert.InDelta(t, 1.5, records[0].OvertimeHours, 1e-9)
	assert.Equal(t, "下班刷卡超出正常下班時刻", records[0].Description)

	assert.Equal(t, "2025/11/27", records[1].Date)
	assert.Empty(t, records[1].PunchRange)
	assert.Zero(t, records[1].OvertimeHours)
}

func TestAttendanceParserMissingTables(t *testing.T) {
	p := NewAttendanceParser(zap.NewNop())

	html := `<html><body><p>no tables here</p></body></html>`

	assert.Empty(t, p.PunchRecords(html))
	assert.Empty(t, p.LeaveRecords(html))
	assert.Nil(t, p.Quota(html))
	assert.Empty(t, p.AnomalyRecords(html))
}

func TestAttendanceParserSkipsShortRows(t *testing.T) {
	p := NewAttendanceParser(zap.NewNop())

	html := `<table id="ContentPlaceHolder1_gvNotes005">
		<tr class="RowStyle"><td>2025/12/01</td></tr>
		<tr class="RowStyle"><td>2025/12/02</td><td>09:00:00</td></tr>
	</table>`

	records := p.PunchRecords(html)
	require.Len(t, records, 1)
	assert.Equal(t, "2025/12/02", records[0].Date)
}
