package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"time"
)

// The interesting contention in this system is many downline users claiming
// and purchasing at once while their rewards land on the same few ancestors.
// This script builds one referral chain, recharges every account, then
// hammers the purchase and claim endpoints concurrently. Ancestor balances
// must end up consistent with the ledger regardless of interleaving.

// createAccountRequest mirrors POST /account
type createAccountRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	ReferredBy string `json:"referredBy"`
}

// createAccountResponse mirrors the created-account payload
type createAccountResponse struct {
	UserID       uint64 `json:"userId"`
	ReferralCode string `json:"referralCode"`
}

// amountRequest mirrors recharge/withdraw bodies
type amountRequest struct {
	Amount int64 `json:"amount"`
}

// purchaseRequest mirrors POST /account/:id/invest
type purchaseRequest struct {
	ProductID uint64 `json:"productId"`
}

// scenario is one kind of traffic the workers generate
type scenario struct {
	Name string
	Run  func(client *http.Client, baseURL string, userID uint64) error
}

// testResult contains metrics for a single request
type testResult struct {
	Scenario     string
	Success      bool
	ResponseTime time.Duration
	Error        error
}

// testStats aggregates results across workers
type testStats struct {
	Successful    int
	Failed        int
	ResponseTimes []time.Duration
	ErrorCounts   map[string]int
	ScenarioRuns  map[string]int
	Lock          sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 200, "Total number of requests to make")
	chainSize := flag.Int("users", 6, "Accounts to register as one referral chain")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	rechargeAmount := flag.Int64("recharge", 5000000, "Initial recharge per account")
	delayMs := flag.Int("delay", 50, "Delay between requests in milliseconds")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	userIDs, err := setupChain(client, *baseURL, *chainSize, *rechargeAmount)
	if err != nil {
		fmt.Printf("Setup failed: %v\n", err)
		return
	}
	fmt.Printf("Registered %d chained accounts: %v\n", len(userIDs), userIDs)

	scenarios := []scenario{
		{"Purchase Starter", func(c *http.Client, url string, id uint64) error {
			return postJSON(c, fmt.Sprintf("%s/account/%d/invest", url, id), purchaseRequest{ProductID: 1})
		}},
		{"Claim All", func(c *http.Client, url string, id uint64) error {
			return postJSON(c, fmt.Sprintf("%s/account/%d/claim-all", url, id), struct{}{})
		}},
		{"Recharge", func(c *http.Client, url string, id uint64) error {
			return postJSON(c, fmt.Sprintf("%s/account/%d/recharge", url, id), amountRequest{Amount: 100000})
		}},
		{"Read Balance", func(c *http.Client, url string, id uint64) error {
			return getOK(c, fmt.Sprintf("%s/account/%d/balance", url, id))
		}},
	}

	stats := &testStats{
		ErrorCounts:   make(map[string]int),
		ScenarioRuns:  make(map[string]int),
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
	}

	jobs := make(chan int, *totalRequests)
	results := make(chan testResult, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *delayMs, userIDs, scenarios, jobs, results)
		}()
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for result := range results {
			stats.Lock.Lock()
			stats.ScenarioRuns[result.Scenario]++
			if result.Success {
				stats.Successful++
			} else {
				stats.Failed++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}
			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")
	wg.Wait()
	close(results)
	<-done

	printResults(stats, *totalRequests, time.Since(startTime))
}

// setupChain registers chainSize accounts where each account refers the next,
// then recharges all of them so purchases can succeed
func setupChain(client *http.Client, baseURL string, chainSize int, recharge int64) ([]uint64, error) {
	userIDs := make([]uint64, 0, chainSize)
	upline := ""
	runID := time.Now().UnixNano() % 1000000

	for i := 0; i < chainSize; i++ {
		payload, _ := json.Marshal(createAccountRequest{
			Name:       fmt.Sprintf("loadtest-%d-%d", runID, i),
			Phone:      fmt.Sprintf("08%d%06d", runID%100, i),
			ReferredBy: upline,
		})
		resp, err := client.Post(baseURL+"/account", "application/json", bytes.NewBuffer(payload))
		if err != nil {
			return nil, err
		}
		var created createAccountResponse
		err = json.NewDecoder(resp.Body).Decode(&created)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		if created.UserID == 0 {
			return nil, fmt.Errorf("account %d not created", i)
		}

		if err := postJSON(client, fmt.Sprintf("%s/account/%d/recharge", baseURL, created.UserID), amountRequest{Amount: recharge}); err != nil {
			return nil, fmt.Errorf("recharge account %d: %w", created.UserID, err)
		}

		userIDs = append(userIDs, created.UserID)
		upline = created.ReferralCode
	}
	return userIDs, nil
}

func worker(baseURL string, delayMs int, userIDs []uint64, scenarios []scenario,
	jobs <-chan int, results chan<- testResult) {

	client := &http.Client{Timeout: 10 * time.Second}

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		// Deep chain members generate the most reward traffic upward
		userID := userIDs[rand.Intn(len(userIDs))]
		sc := scenarios[rand.Intn(len(scenarios))]

		startTime := time.Now()
		err := sc.Run(client, baseURL, userID)
		results <- testResult{
			Scenario:     sc.Name,
			Success:      err == nil,
			ResponseTime: time.Since(startTime),
			Error:        err,
		}
	}
}

func postJSON(client *http.Client, url string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// Claim-gate conflicts are expected traffic, not failures
	if resp.StatusCode >= 200 && resp.StatusCode < 300 || resp.StatusCode == http.StatusConflict {
		return nil
	}
	return fmt.Errorf("HTTP status code %d", resp.StatusCode)
}

func getOK(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	return nil
}

func printResults(stats *testStats, totalRequests int, totalTime time.Duration) {
	tps := float64(stats.Successful) / totalTime.Seconds()

	var totalResponse time.Duration
	sorted := make([]time.Duration, len(stats.ResponseTimes))
	copy(sorted, stats.ResponseTimes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for _, d := range sorted {
		totalResponse += d
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", totalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.Successful,
		float64(stats.Successful)/float64(totalRequests)*100)
	fmt.Printf("Failed Requests:     %d\n", stats.Failed)
	fmt.Printf("Total Test Time:     %.2f seconds\n", totalTime.Seconds())
	fmt.Printf("Throughput:          %.2f req/s\n", tps)

	if len(sorted) > 0 {
		fmt.Println("\n----------------- RESPONSE TIMES -----------------")
		fmt.Printf("Average Response:    %v\n", totalResponse/time.Duration(len(sorted)))
		fmt.Printf("Minimum Response:    %v\n", sorted[0])
		fmt.Printf("Maximum Response:    %v\n", sorted[len(sorted)-1])
		fmt.Printf("P50 Response:        %v\n", sorted[len(sorted)*50/100])
		fmt.Printf("P95 Response:        %v\n", sorted[len(sorted)*95/100])
		fmt.Printf("P99 Response:        %v\n", sorted[len(sorted)*99/100])
	}

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for name, count := range stats.ScenarioRuns {
		fmt.Printf("%-18s: %d requests\n", name, count)
	}

	if stats.Failed > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", errMsg, count)
		}
	}
	fmt.Println("================================================")
}
