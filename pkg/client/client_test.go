package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recruiter-pipeline-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsTokenAndDecodesEnvelope(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/v1/applications", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "Applications retrieved",
			"data": domain.ApplicationList{
				Applications: []domain.Application{{ID: "a1", CandidateName: "Ada", Status: domain.StatusOffer}},
				Pagination:   domain.Pagination{CurrentPage: 2, TotalPages: 2, TotalItems: 11, ItemsPerPage: 10},
			},
		})
	}))
	defer srv.Close()

	minYears := 2.5
	c := NewClient(srv.URL+"/", "tok", srv.Client())
	list, err := c.ListApplications(context.Background(), ListParams{
		Status:        domain.StatusOffer,
		ExperienceMin: &minYears,
		Page:          2,
		Limit:         10,
		SortBy:        domain.SortByCandidateName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "experienceMin=2.5&limit=10&page=2&sortBy=candidateName&status=offer", gotQuery)
	require.Len(t, list.Applications, 1)
	assert.Equal(t, "Ada", list.Applications[0].CandidateName)
	assert.Equal(t, int64(11), list.Pagination.TotalItems)
}

func TestClientMapsErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/applications/missing/status":
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Application not found", "request_id": "r1"})
		case "/v1/analytics/dashboard":
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "retry", "retryable": true})
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)

	_, err := c.SetStatus(context.Background(), "missing", domain.StatusOffer)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "r1", apiErr.RequestID)

	_, err = c.Dashboard(context.Background())
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Retryable)

	_, err = c.Timeline(context.Background(), domain.PeriodWeekly)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Message)
}
