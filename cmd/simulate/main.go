// Simulate fires concurrent booking requests for the same semester and
// day at a running API server. With the per-day lock and the database
// exclusion constraint in place, exactly one request should win and the
// rest should come back as conflicts.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/campusops/academic-scheduling/internal/schedule"
)

// Every attempt books the first two morning catalog slots so all requests
// contend for the same window.
var contestedSlots = schedule.SlotsFor(schedule.PeriodMorning)[:2]

type bookingRequest struct {
	SemesterID   string   `json:"semester_id"`
	CourseID     string   `json:"course_id"`
	ClassID      string   `json:"class_id"`
	DisciplineID string   `json:"discipline_id"`
	Date         string   `json:"date"`
	TimeSlots    []string `json:"time_slots"`
}

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:8080", "API base URL")
		token        = flag.String("token", "", "bearer token of a user allowed to book")
		semesterID   = flag.String("semester", "", "semester id to book in")
		courseID     = flag.String("course", "", "course id")
		classID      = flag.String("class", "", "class id")
		disciplineID = flag.String("discipline", "", "discipline id")
		date         = flag.String("date", time.Now().AddDate(0, 0, 7).Format("2006-01-02"), "booking date (YYYY-MM-DD)")
		concurrency  = flag.Int("n", 10, "number of concurrent booking attempts")
	)
	flag.Parse()

	if *token == "" || *semesterID == "" || *courseID == "" || *classID == "" || *disciplineID == "" {
		fmt.Fprintln(os.Stderr, "usage: simulate -token ... -semester ... -course ... -class ... -discipline ... [-n 10]")
		os.Exit(2)
	}

	body, _ := json.Marshal(bookingRequest{
		SemesterID:   *semesterID,
		CourseID:     *courseID,
		ClassID:      *classID,
		DisciplineID: *disciplineID,
		Date:         *date,
		TimeSlots:    contestedSlots,
	})

	client := &http.Client{Timeout: 10 * time.Second}

	var booked, conflicted, failed atomic.Int64
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			req, err := http.NewRequest(http.MethodPost, *baseURL+"/bookings", bytes.NewReader(body))
			if err != nil {
				failed.Add(1)
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+*token)

			resp, err := client.Do(req)
			if err != nil {
				failed.Add(1)
				fmt.Printf("attempt %02d: request error: %v\n", attempt, err)
				return
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusCreated:
				booked.Add(1)
				fmt.Printf("attempt %02d: booked\n", attempt)
			case http.StatusConflict:
				conflicted.Add(1)
				fmt.Printf("attempt %02d: conflict\n", attempt)
			default:
				failed.Add(1)
				msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				fmt.Printf("attempt %02d: unexpected %d: %s\n", attempt, resp.StatusCode, msg)
			}
		}(i + 1)
	}

	wg.Wait()

	fmt.Printf("\n%d attempts in %s: %d booked, %d conflicted, %d failed\n",
		*concurrency, time.Since(start).Round(time.Millisecond),
		booked.Load(), conflicted.Load(), failed.Load())

	if booked.Load() != 1 {
		fmt.Println("WARNING: expected exactly one successful booking")
		os.Exit(1)
	}
}
