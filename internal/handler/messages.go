package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/octobees/job-market-dashboard/internal/jobsapi"
)

// userMessage turns a job API failure into the text shown on the page. Status failures
// show the upstream code, anything else a generic loading error.
func userMessage(err error) string {
	if code := jobsapi.StatusCode(err); code != 0 {
		return fmt.Sprintf("Erreur API: %d", code)
	}
	return "Erreur de chargement"
}

// upstreamStatus maps a job API failure to the status returned by the JSON API.
func upstreamStatus(err error) (int, string) {
	switch {
	case jobsapi.IsTimeout(err):
		return http.StatusGatewayTimeout, "job api timed out"
	case jobsapi.StatusCode(err) != 0:
		return http.StatusBadGateway, fmt.Sprintf("job api returned status %d", jobsapi.StatusCode(err))
	case errors.Is(err, jobsapi.ErrMalformed):
		return http.StatusBadGateway, "job api returned an invalid response"
	default:
		return http.StatusBadGateway, "job api unavailable"
	}
}

func parseIntDefault(input string, fallback int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
