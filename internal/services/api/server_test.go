package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storepulse/storepulse/internal/domain/report"
	"github.com/storepulse/storepulse/internal/repository/postgres"
)

type memReports struct {
	reports map[uuid.UUID]*report.Report
}

func newMemReports() *memReports {
	return &memReports{reports: make(map[uuid.UUID]*report.Report)}
}
func (m *memReports) Create(_ context.Context, r *report.Report) error {
	m.reports[r.ID] = r
	return nil
}
func (m *memReports) Get(_ context.Context, id uuid.UUID) (*report.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return r, nil
}
func (m *memReports) MarkRunning(_ context.Context, id uuid.UUID) error {
	m.reports[id].Status = report.StatusRunning
	return nil
}
func (m *memReports) Complete(_ context.Context, id uuid.UUID, csv []byte) error {
	m.reports[id].Status = report.StatusComplete
	m.reports[id].CSV = csv
	return nil
}
func (m *memReports) Fail(_ context.Context, id uuid.UUID) error {
	m.reports[id].Status = report.StatusFailed
	return nil
}

type stubEvents struct {
	published []uuid.UUID
	err       error
}

func (s *stubEvents) PublishReportRequested(_ context.Context, id uuid.UUID, _ time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.published = append(s.published, id)
	return nil
}

func newTestServer(reports *memReports, events *stubEvents) *Server {
	clk := func() time.Time { return time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC) }
	return NewServer(zap.NewNop(), NewUsecase(reports, events, clk))
}

func TestTriggerReport(t *testing.T) {
	reports := newMemReports()
	events := &stubEvents{}
	srv := httptest.NewServer(newTestServer(reports, events).Routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/trigger_report", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	id, err := uuid.Parse(body["report_id"])
	require.NoError(t, err)

	rep, ok := reports.reports[id]
	require.True(t, ok)
	require.Equal(t, report.StatusQueued, rep.Status)
	require.Equal(t, time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC), rep.RequestedAt)
	require.Equal(t, []uuid.UUID{id}, events.published)
}

func TestTriggerReportPublishFailure(t *testing.T) {
	reports := newMemReports()
	events := &stubEvents{err: errors.New("broker down")}
	srv := httptest.NewServer(newTestServer(reports, events).Routes())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/trigger_report", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// The queued row is marked failed so the poll endpoint never hangs on it.
	require.Len(t, reports.reports, 1)
	for _, rep := range reports.reports {
		require.Equal(t, report.StatusFailed, rep.Status)
	}
}

func TestGetReportValidation(t *testing.T) {
	srv := httptest.NewServer(newTestServer(newMemReports(), &stubEvents{}).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/get_report")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/get_report?report_id=not-a-uuid")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/get_report?report_id=" + uuid.NewString())
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetReportRunning(t *testing.T) {
	reports := newMemReports()
	id := uuid.New()
	reports.reports[id] = &report.Report{ID: id, Status: report.StatusQueued}

	srv := httptest.NewServer(newTestServer(reports, &stubEvents{}).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/get_report?report_id=" + id.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Running", body["status"])
}

func TestGetReportComplete(t *testing.T) {
	reports := newMemReports()
	id := uuid.New()
	csv := []byte("store_id,uptime_last_hour\nalpha,60.00\n")
	reports.reports[id] = &report.Report{ID: id, Status: report.StatusComplete, CSV: csv}

	srv := httptest.NewServer(newTestServer(reports, &stubEvents{}).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/get_report?report_id=" + id.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "report.csv")

	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, csv, got)
}

func TestGetReportFailed(t *testing.T) {
	reports := newMemReports()
	id := uuid.New()
	reports.reports[id] = &report.Report{ID: id, Status: report.StatusFailed}

	srv := httptest.NewServer(newTestServer(reports, &stubEvents{}).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/get_report?report_id=" + id.String())
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "Failed", body["status"])
}
