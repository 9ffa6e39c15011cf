// Command smoke exercises a running timetable-api instance end to end: it
// uploads a catalog CSV, requests a schedule generation, and prints the top
// ranked combinations. Intended for manual verification against a dev server.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type catalogResponse struct {
	ID       string   `json:"id"`
	Courses  []string `json:"courses"`
	Teachers []string `json:"teachers"`
}

type generateResponse struct {
	RunID        string `json:"runId"`
	Total        int    `json:"total"`
	Combinations []struct {
		Score    float64 `json:"score"`
		Sections []struct {
			ID      string `json:"id"`
			Course  string `json:"course"`
			Teacher string `json:"teacher"`
		} `json:"sections"`
		Metrics struct {
			AvgRank        float64 `json:"avgRank"`
			WindowMinutes  int     `json:"windowMinutes"`
			FreeDays       int     `json:"freeDays"`
			VetoCount      int     `json:"vetoCount"`
			SlotViolations int     `json:"slotViolations"`
		} `json:"metrics"`
	} `json:"combinations"`
	Stats struct {
		Enumerated int   `json:"enumerated"`
		Valid      int   `json:"valid"`
		Truncated  bool  `json:"truncated"`
		DurationMS int64 `json:"durationMs"`
	} `json:"stats"`
}

func main() {
	var (
		base     string
		csvPath  string
		courses  string
		section  string
		course   string
		teacher  string
		schedule string
		timeout  time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&csvPath, "csv", "", "Path to catalog CSV (required)")
	flag.StringVar(&courses, "courses", "", "Comma-separated course names to combine (defaults to the first two)")
	flag.StringVar(&section, "section-col", "NRC", "Section column header")
	flag.StringVar(&course, "course-col", "Asignatura", "Course column header")
	flag.StringVar(&teacher, "teacher-col", "Docente", "Teacher column header")
	flag.StringVar(&schedule, "schedule-col", "Horario", "Schedule column header")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP client timeout")
	flag.Parse()

	if csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	client := &http.Client{Timeout: timeout}

	catalog, err := uploadCatalog(client, base, csvPath, map[string]string{
		"section":  section,
		"course":   course,
		"teacher":  teacher,
		"schedule": schedule,
	})
	if err != nil {
		log.Fatalf("catalog upload failed: %v", err)
	}
	fmt.Printf("catalog %s: %d courses, %d teachers\n", catalog.ID, len(catalog.Courses), len(catalog.Teachers))

	selected := splitCourses(courses)
	if len(selected) == 0 {
		if len(catalog.Courses) < 2 {
			selected = catalog.Courses
		} else {
			selected = catalog.Courses[:2]
		}
	}

	result, err := generate(client, base, catalog.ID, selected)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	fmt.Printf("run %s: %d enumerated, %d valid, truncated=%v, %dms\n",
		result.RunID, result.Stats.Enumerated, result.Stats.Valid, result.Stats.Truncated, result.Stats.DurationMS)
	for i, combo := range result.Combinations {
		ids := make([]string, 0, len(combo.Sections))
		for _, s := range combo.Sections {
			ids = append(ids, fmt.Sprintf("%s(%s)", s.ID, s.Teacher))
		}
		fmt.Printf("%2d. score=%.3f free=%d window=%dmin  %s\n",
			i+1, combo.Score, combo.Metrics.FreeDays, combo.Metrics.WindowMinutes, strings.Join(ids, " + "))
	}
}

func uploadCatalog(client *http.Client, base, csvPath string, mapping map[string]string) (*catalogResponse, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(csvPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	for key, value := range mapping {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, base+"/api/v1/catalogs", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var catalog catalogResponse
	if err := do(client, req, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func generate(client *http.Client, base, catalogID string, courses []string) (*generateResponse, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"catalogId": catalogID,
		"courses":   courses,
		"weights": map[string]float64{
			"rank": 3, "window": 3, "freeDays": 3, "veto": 3, "slot": 3,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, base+"/api/v1/schedules/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result generateResponse
	if err := do(client, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func do(client *http.Client, req *http.Request, dest interface{}) error {
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unexpected response (%d): %s", resp.StatusCode, string(raw))
	}
	if env.Error != nil {
		return fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
	}
	return json.Unmarshal(env.Data, dest)
}

func splitCourses(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
