//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	baseURL      string
	client       *http.Client
	token        string
	response     *http.Response
	responseBody []byte
	remembered   map[string]string
}

func newTestContext(baseURL string) *testContext {
	return &testContext{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		remembered: map[string]string{},
	}
}

// reset clears scenario state. The base URL and HTTP client survive.
func (tc *testContext) reset() {
	if tc.response != nil && tc.response.Body != nil {
		tc.response.Body.Close()
	}
	tc.token = ""
	tc.response = nil
	tc.responseBody = nil
	tc.remembered = map[string]string{}
}

// initializeScenario registers step definitions against a service at baseURL.
func initializeScenario(baseURL string) func(*godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		tc := newTestContext(baseURL)

		ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
		ctx.Step(`^I am signed up as "([^"]*)"$`, tc.iAmSignedUpAs)
		ctx.Step(`^I request (GET|DELETE) "([^"]*)"$`, tc.iRequest)
		ctx.Step(`^I (POST|PUT) "([^"]*)" with:$`, tc.iSendJSON)
		ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, tc.iRemember)
		ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
		ctx.Step(`^the response status should not be (\d+)$`, tc.theResponseStatusShouldNotBe)
		ctx.Step(`^the response should contain "(.*)"$`, tc.theResponseShouldContain)
		ctx.Step(`^the response should not contain "(.*)"$`, tc.theResponseShouldNotContain)
	}
}

func (tc *testContext) theServiceIsRunning() error {
	if err := tc.do(http.MethodGet, "/-/live", nil); err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}

	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status %d", tc.response.StatusCode)
	}

	return nil
}

func (tc *testContext) iAmSignedUpAs(email string) error {
	body := fmt.Sprintf(`{"email":%q,"password":"secret1","fullName":"Test User"}`, email)
	if err := tc.do(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body)); err != nil {
		return err
	}

	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("sign up failed with %d: %s", tc.response.StatusCode, tc.responseBody)
	}

	token, err := tc.field("accessToken")
	if err != nil {
		return err
	}

	tc.token = token

	return nil
}

func (tc *testContext) iRequest(method, path string) error {
	return tc.do(method, tc.expand(path), nil)
}

func (tc *testContext) iSendJSON(method, path string, doc *godog.DocString) error {
	return tc.do(method, tc.expand(path), strings.NewReader(tc.expand(doc.Content)))
}

func (tc *testContext) iRemember(field, name string) error {
	v, err := tc.field(field)
	if err != nil {
		return err
	}

	tc.remembered[name] = v

	return nil
}

func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

func (tc *testContext) theResponseStatusShouldNotBe(code int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode == code {
		return fmt.Errorf("unexpected status %d. Body: %s", code, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldContain(text string) error {
	if !bytes.Contains(tc.responseBody, []byte(tc.expand(text))) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldNotContain(text string) error {
	if bytes.Contains(tc.responseBody, []byte(tc.expand(text))) {
		return fmt.Errorf("response body contains %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

// do sends one request, attaching the session token when there is one.
func (tc *testContext) do(method, path string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if tc.token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}

	if tc.response != nil {
		tc.response.Body.Close()
	}

	tc.response, err = tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	tc.responseBody, err = io.ReadAll(tc.response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

// field reads a top-level string field of the JSON response.
func (tc *testContext) field(name string) (string, error) {
	var doc map[string]any
	if err := json.Unmarshal(tc.responseBody, &doc); err != nil {
		return "", fmt.Errorf("response is not a JSON object: %w", err)
	}

	v, ok := doc[name].(string)
	if !ok {
		return "", fmt.Errorf("response has no string field %q: %s", name, tc.responseBody)
	}

	return v, nil
}

// expand unescapes quotes and replaces {name} with remembered values.
func (tc *testContext) expand(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	for k, v := range tc.remembered {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}

	return s
}

// TestFeatures runs the GoDog BDD suite against BASE_URL, or against an
// in-process stack when it is unset.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = startStack(t)
	}

	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario(baseURL),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
