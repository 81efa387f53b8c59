// Command notification-replay sends signed gateway notifications to a running
// API to exercise the webhook under concurrent and duplicate deliveries.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/contactbot/payment-processor/internal/domain/entity"
	"github.com/contactbot/payment-processor/internal/domain/signature"
	"github.com/go-resty/resty/v2"
)

// Notification is the wire body sent to the webhook
type Notification struct {
	TerminalKey string `json:"TerminalKey"`
	Amount      int64  `json:"Amount"`
	OrderID     string `json:"OrderId"`
	Success     bool   `json:"Success"`
	Status      string `json:"Status"`
	PaymentID   string `json:"PaymentId"`
	ErrorCode   string `json:"ErrorCode"`
	Token       string `json:"Token"`
}

// Scenario is one kind of delivery
type Scenario struct {
	Name   string
	Status entity.TransactionStatus
	Forged bool
}

// Result contains metrics for a single delivery
type Result struct {
	Scenario     string
	StatusCode   int
	ResponseTime time.Duration
	Err          error
}

// Stats contains aggregated replay statistics
type Stats struct {
	mu            sync.Mutex
	total         int
	responseTimes []time.Duration
	byStatus      map[int]int
	byScenario    map[string]map[int]int
	errors        map[string]int
}

func newStats(total int) *Stats {
	return &Stats{
		total:         total,
		responseTimes: make([]time.Duration, 0, total),
		byStatus:      make(map[int]int),
		byScenario:    make(map[string]map[int]int),
		errors:        make(map[string]int),
	}
}

func (s *Stats) add(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responseTimes = append(s.responseTimes, r.ResponseTime)
	if r.Err != nil {
		s.errors[r.Err.Error()]++
		return
	}
	s.byStatus[r.StatusCode]++
	if s.byScenario[r.Scenario] == nil {
		s.byScenario[r.Scenario] = make(map[int]int)
	}
	s.byScenario[r.Scenario][r.StatusCode]++
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent senders")
	total := flag.Int("n", 50, "Total number of deliveries")
	orders := flag.String("orders", "", "Comma-separated order IDs (transaction IDs) to notify about")
	paymentID := flag.String("payment", "1000000", "Gateway payment ID reported in notifications")
	amount := flag.Int64("amount", 3000, "Amount reported in notifications")
	terminal := flag.String("terminal", os.Getenv("PP_GATEWAY_TERMINAL_KEY"), "Terminal key")
	password := flag.String("password", os.Getenv("PP_GATEWAY_PASSWORD"), "Terminal password used to sign")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	forgedShare := flag.Float64("forged", 0.1, "Share of deliveries sent with a wrong token")
	delay := flag.Duration("delay", 20*time.Millisecond, "Delay between deliveries of one sender")
	flag.Parse()

	orderIDs := splitList(*orders)
	if len(orderIDs) == 0 || *password == "" {
		fmt.Fprintln(os.Stderr, "both -orders and -password (or PP_GATEWAY_PASSWORD) are required")
		os.Exit(2)
	}

	scenarios := []Scenario{
		{Name: "authorized", Status: "AUTHORIZED"},
		{Name: "confirmed", Status: entity.StatusConfirmed},
		{Name: "confirmed", Status: entity.StatusConfirmed},
		{Name: "rejected", Status: entity.StatusRejected},
	}

	fmt.Printf("Replaying %d notifications for %d orders with %d senders\n", *total, len(orderIDs), *concurrency)

	client := resty.New().
		SetBaseURL(*baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	stats := newStats(*total)
	jobs := make(chan int, *total)
	for i := 0; i < *total; i++ {
		jobs <- i
	}
	close(jobs)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))

			for range jobs {
				if *delay > 0 {
					time.Sleep(*delay)
				}

				scenario := scenarios[rnd.Intn(len(scenarios))]
				if rnd.Float64() < *forgedShare {
					scenario = Scenario{Name: "forged", Status: scenario.Status, Forged: true}
				}

				n := Notification{
					TerminalKey: *terminal,
					Amount:      *amount,
					OrderID:     orderIDs[rnd.Intn(len(orderIDs))],
					Success:     scenario.Status != entity.StatusRejected,
					Status:      string(scenario.Status),
					PaymentID:   *paymentID,
					ErrorCode:   "0",
				}
				n.Token = sign(n, *password)
				if scenario.Forged {
					n.Token = sign(n, *password+"-forged")
				}

				stats.add(deliver(client, scenario.Name, n))
			}
		}(time.Now().UnixNano() + int64(w))
	}
	wg.Wait()

	printResults(stats, time.Since(start))
}

func sign(n Notification, password string) string {
	return signature.Token(signature.Payload{}.
		Add("TerminalKey", signature.String(n.TerminalKey)).
		Add("Amount", signature.Int(n.Amount)).
		Add("OrderId", signature.String(n.OrderID)).
		Add("Success", signature.Bool(n.Success)).
		Add("Status", signature.String(n.Status)).
		Add("PaymentId", signature.String(n.PaymentID)).
		Add("ErrorCode", signature.String(n.ErrorCode)), password)
}

func deliver(client *resty.Client, scenario string, n Notification) Result {
	start := time.Now()
	resp, err := client.R().SetBody(n).Post("/api/v2/Notification")
	result := Result{Scenario: scenario, ResponseTime: time.Since(start)}
	if err != nil {
		result.Err = err
		return result
	}
	result.StatusCode = resp.StatusCode()
	return result
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printResults(stats *Stats, elapsed time.Duration) {
	sorted := make([]time.Duration, len(stats.responseTimes))
	copy(sorted, stats.responseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	percentile := func(p int) time.Duration {
		if len(sorted) == 0 {
			return 0
		}
		return sorted[len(sorted)*p/100]
	}

	fmt.Println("\n================= REPLAY RESULTS =================")
	fmt.Printf("Deliveries:          %d\n", stats.total)
	fmt.Printf("Total Time:          %.2f seconds\n", elapsed.Seconds())
	fmt.Printf("Throughput:          %.2f req/s\n", float64(stats.total)/elapsed.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("P50 Response:        %v\n", percentile(50))
	fmt.Printf("P90 Response:        %v\n", percentile(90))
	fmt.Printf("P99 Response:        %v\n", percentile(99))

	fmt.Println("\n----------------- STATUS CODES -----------------")
	for code, count := range stats.byStatus {
		fmt.Printf("HTTP %d:            %d\n", code, count)
	}

	fmt.Println("\n----------------- BY SCENARIO -----------------")
	for scenario, codes := range stats.byScenario {
		fmt.Printf("%-12s %v\n", scenario, codes)
	}

	if len(stats.errors) > 0 {
		fmt.Println("\n----------------- TRANSPORT ERRORS -----------------")
		for msg, count := range stats.errors {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}

	if forged := stats.byScenario["forged"]; forged != nil && forged[403] != sumCodes(forged) {
		fmt.Println("\n⚠️ Some forged notifications were not rejected with 403")
	}
	fmt.Println("==================================================")
}

func sumCodes(codes map[int]int) int {
	total := 0
	for _, c := range codes {
		total += c
	}
	return total
}
