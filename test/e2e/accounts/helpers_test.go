package accounts_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/parleychat/parley/pkg/accountsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for accounts service end-to-end
 * tests: container setup, log-mailer scraping, and assertions.
 */

const (
	testImageName = "parley-accounts-test:latest"

	testFullName = "Avery Quinn"
	testEmail    = "avery@example.com"
	testMobile   = "0412345678"
	testPassword = "Sup3r-Secret!"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Accounts Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Accounts Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/accounts/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupAccountsContainer starts the accounts service in a container with the
// log mailer and relaxed limits, returning the base URL, the container for
// log scraping, and a cleanup func.
func setupAccountsContainer(t *testing.T) (string, testcontainers.Container, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"ACCOUNTS_DATABASE_FILE":       "/tmp/accounts.db",
			"ACCOUNTS_PEPPER_FILE":         "/tmp/pepper",
			"ACCOUNTS_ACCESS_SECRET":       "e2e-access-secret",
			"ACCOUNTS_REFRESH_SECRET":      "e2e-refresh-secret",
			"ACCOUNTS_CHALLENGE_SECRET":    "e2e-challenge-secret",
			"ACCOUNTS_RESET_SECRET":        "e2e-reset-secret",
			"ACCOUNTS_MAIL_MODE":           "log",
			"ACCOUNTS_OTP_RESEND_COOLDOWN": "0s",
			"ENV":                          "test",
			"LOG_LEVEL":                    "info",
			"LOG_FORMAT":                   "json",
			// Relax the per-IP limits so rapid test requests do not trip them
			"RATELIMIT_STRICT_REQUESTS":   "1000",
			"RATELIMIT_STRICT_WINDOW_SEC": "60",
			"RATELIMIT_STRICT_BURST":      "1000",
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
			"RATELIMIT_OTP_REQUESTS":      "1000",
			"RATELIMIT_OTP_WINDOW_SEC":    "60",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, container, cleanup
}

// latestOTPFromLogs scrapes the log-mailer output for the most recent OTP
// sent to email. The JSON log handler keeps recipient and body on one line,
// so a single pattern scopes the code to the right mail.
func latestOTPFromLogs(t *testing.T, container testcontainers.Container, email string) string {
	t.Helper()

	pattern := regexp.MustCompile(
		`"to":"` + regexp.QuoteMeta(email) + `".*verify your Parley account: (\d{6})`)

	return scrapeLogs(t, container, pattern, "")
}

// otpAfter polls for an OTP different from previous, for resend tests where
// the old code is already in the log.
func otpAfter(t *testing.T, container testcontainers.Container, email, previous string) string {
	t.Helper()

	pattern := regexp.MustCompile(
		`"to":"` + regexp.QuoteMeta(email) + `".*verify your Parley account: (\d{6})`)

	return scrapeLogs(t, container, pattern, previous)
}

// scrapeLogs polls the container log for the last capture of pattern,
// skipping notWant. Logs flush asynchronously so it retries briefly.
func scrapeLogs(t *testing.T, container testcontainers.Container, pattern *regexp.Regexp, notWant string) string {
	t.Helper()
	ctx := context.Background()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		reader, err := container.Logs(ctx)
		require.NoError(t, err)
		logs, err := io.ReadAll(reader)
		_ = reader.Close()
		require.NoError(t, err)

		matches := pattern.FindAllSubmatch(logs, -1)
		if len(matches) > 0 {
			got := string(matches[len(matches)-1][1])
			if got != notWant {
				return got
			}
		}
		time.Sleep(200 * time.Millisecond)
	}

	t.Fatalf("no match for %s in container logs", pattern)
	return ""
}

var resetLinkPattern = regexp.MustCompile(`reset-password\?token=([A-Za-z0-9._%-]+)`)

// latestResetTokenFromLogs scrapes the log-mailer output for the most recent
// password reset token.
func latestResetTokenFromLogs(t *testing.T, container testcontainers.Container) string {
	t.Helper()
	return scrapeLogs(t, container, resetLinkPattern, "")
}

// registerAndVerify walks a fresh account through register + OTP verify.
func registerAndVerify(t *testing.T, client *accountsdk.SDKClient, container testcontainers.Container, email, mobile string) accountsdk.RegisterData {
	t.Helper()
	ctx := context.Background()

	data, err := client.Register(ctx, accountsdk.RegisterRequest{
		FullName:     testFullName,
		Email:        email,
		MobileNumber: mobile,
		Password:     testPassword,
	})
	require.NoError(t, err, "Register should succeed")
	require.NotEmpty(t, data.AccountID)
	require.NotEmpty(t, data.ChallengeToken)

	otp := latestOTPFromLogs(t, container, email)
	require.NoError(t, client.VerifyOTP(ctx, data.ChallengeToken, otp), "OTP verification should succeed")

	return data
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health accountsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
}
