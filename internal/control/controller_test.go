package control_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/group-post-monitor/internal/control"
	"github.com/donaldgifford/group-post-monitor/internal/graph"
	graphmocks "github.com/donaldgifford/group-post-monitor/internal/graph/mocks"
	"github.com/donaldgifford/group-post-monitor/internal/notify"
	notifymocks "github.com/donaldgifford/group-post-monitor/internal/notify/mocks"
	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

type fakeSource struct {
	*graphmocks.MockFeedSource
	*graphmocks.MockAccessChecker
}

func newFakeSource(t *testing.T) *fakeSource {
	t.Helper()
	return &fakeSource{
		MockFeedSource:    graphmocks.NewMockFeedSource(t),
		MockAccessChecker: graphmocks.NewMockAccessChecker(t),
	}
}

func writeCreds(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "creds.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func validSettings() domain.Settings {
	return domain.Settings{
		Groups:        []string{"g1", " g2 ", ""},
		Criteria:      domain.Criteria{MinPrice: 500, MaxPrice: 1200, Keywords: []string{" pet ", ""}},
		EmailSender:   "me@example.com",
		EmailReceiver: "you@example.com",
		EmailPassword: "pw",
	}
}

func newController(
	t *testing.T,
	credsPath string,
	src control.Source,
	n notify.Notifier,
) (*control.Controller, *string) {
	t.Helper()
	var gotToken string
	c := control.New(credsPath,
		func(token string) control.Source {
			gotToken = token
			return src
		},
		func(*domain.Settings) notify.Notifier { return n },
		control.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	t.Cleanup(func() { _, _ = c.Stop() })
	return c, &gotToken
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{in: "a, b,,c", want: []string{"a", "b", "c"}},
		{in: "  single  ", want: []string{"single"}},
		{in: "", want: nil},
		{in: " , ,", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, control.SplitList(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := validSettings()
	got := control.Normalize(in)

	assert.Equal(t, []string{"g1", "g2"}, got.Groups)
	assert.Equal(t, []string{"pet"}, got.Criteria.Keywords)
	assert.Equal(t, "smtp.gmail.com", got.SMTPServer)
	assert.Equal(t, 587, got.SMTPPort)
	assert.Equal(t, time.Minute, got.CheckInterval)
	assert.Equal(t, []string{"g1", " g2 ", ""}, in.Groups, "input is not mutated")
}

func TestController_Start_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*domain.Settings)
		errSubstr string
	}{
		{name: "no groups", mutate: func(s *domain.Settings) { s.Groups = []string{" ", ""} }, errSubstr: "at least one group"},
		{name: "min above max", mutate: func(s *domain.Settings) { s.Criteria.MinPrice = 2000 }, errSubstr: "must not exceed max price"},
		{name: "missing sender", mutate: func(s *domain.Settings) { s.EmailSender = " " }, errSubstr: "email sender is required"},
		{name: "bad cron", mutate: func(s *domain.Settings) { s.Schedule = "whenever" }, errSubstr: "parsing schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, _ := newController(t, writeCreds(t, "tok"), newFakeSource(t), notifymocks.NewMockNotifier(t))
			s := validSettings()
			tt.mutate(&s)

			_, err := c.Start(context.Background(), s)
			require.ErrorIs(t, err, control.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.errSubstr)
			assert.False(t, c.Running())
		})
	}
}

func TestController_Start_CredentialUnavailable(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.txt")
	c, _ := newController(t, missing, newFakeSource(t), notifymocks.NewMockNotifier(t))

	_, err := c.Start(context.Background(), validSettings())
	require.ErrorIs(t, err, control.ErrCredentialUnavailable)
	assert.False(t, c.Running())
}

func TestController_Start_AuthenticationRejected(t *testing.T) {
	t.Parallel()

	src := newFakeSource(t)
	src.MockAccessChecker.EXPECT().CheckAccess(mock.Anything, "g1").Return(nil).Once()
	src.MockAccessChecker.EXPECT().CheckAccess(mock.Anything, "g2").
		Return(&graph.APIError{StatusCode: 400, Body: "OAuthException"}).Once()

	c, token := newController(t, writeCreds(t, " secret-token\n"), src, notifymocks.NewMockNotifier(t))

	_, err := c.Start(context.Background(), validSettings())
	require.ErrorIs(t, err, control.ErrAuthenticationRejected)
	assert.Contains(t, err.Error(), "group g2")
	assert.Equal(t, "secret-token", *token)
	assert.False(t, c.Running())

	// The user can retry after fixing the problem.
	src.MockAccessChecker.EXPECT().CheckAccess(mock.Anything, mock.Anything).Return(nil).Twice()
	_, err = c.Start(context.Background(), validSettings())
	require.NoError(t, err)
	assert.True(t, c.Running())
}

func TestController_StartStop(t *testing.T) {
	t.Parallel()

	src := newFakeSource(t)
	src.MockAccessChecker.EXPECT().CheckAccess(mock.Anything, mock.Anything).Return(nil)

	c, _ := newController(t, writeCreds(t, "tok"), src, notifymocks.NewMockNotifier(t))

	_, err := c.Stop()
	require.ErrorIs(t, err, control.ErrNotRunning)

	st, err := c.Start(context.Background(), validSettings())
	require.NoError(t, err)
	assert.True(t, st.Running)
	assert.Equal(t, []string{"g1", "g2"}, st.Groups)
	require.NotNil(t, st.NextCycleAt)

	_, err = c.Start(context.Background(), validSettings())
	require.ErrorIs(t, err, control.ErrAlreadyRunning)

	_, err = c.RunOnce(context.Background(), validSettings())
	require.ErrorIs(t, err, control.ErrAlreadyRunning)

	st, err = c.Stop()
	require.NoError(t, err)
	assert.False(t, st.Running)
	assert.False(t, c.Status().Running)

	_, err = c.Stop()
	require.ErrorIs(t, err, control.ErrNotRunning)
}

func TestController_Status_NeverStarted(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, writeCreds(t, "tok"), newFakeSource(t), notifymocks.NewMockNotifier(t))
	assert.Equal(t, domain.Status{}, c.Status())
	assert.False(t, c.Running())
}

func TestController_RunOnce(t *testing.T) {
	t.Parallel()

	src := newFakeSource(t)
	src.MockAccessChecker.EXPECT().CheckAccess(mock.Anything, mock.Anything).Return(nil).Twice()
	src.MockFeedSource.EXPECT().Feed(mock.Anything, "g1").Return([]domain.Post{{
		ID: "g1_1", GroupID: "g1", Message: "$950/mo, Pet friendly", HasMessage: true,
		CreatedTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}}, nil).Once()
	src.MockFeedSource.EXPECT().Feed(mock.Anything, "g2").Return(nil, nil).Once()

	n := notifymocks.NewMockNotifier(t)
	n.EXPECT().Send(mock.Anything, mock.Anything).Return(nil).Once()

	c, _ := newController(t, writeCreds(t, "tok"), src, n)

	res, err := c.RunOnce(context.Background(), validSettings())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.False(t, c.Running())
}

func TestController_Check(t *testing.T) {
	t.Parallel()

	src := newFakeSource(t)
	src.MockAccessChecker.EXPECT().CheckAccess(mock.Anything, "g1").Return(nil).Once()
	src.MockAccessChecker.EXPECT().CheckAccess(mock.Anything, "g2").Return(&graph.APIError{StatusCode: 400}).Once()

	c, gotToken := newController(t, writeCreds(t, "tok\n"), src, notifymocks.NewMockNotifier(t))

	_, err := c.Check(context.Background(), []string{"g1", "g2", "g3"})
	require.ErrorIs(t, err, control.ErrAuthenticationRejected)
	assert.Contains(t, err.Error(), "group g2")
	assert.Equal(t, "tok", *gotToken)
	assert.False(t, c.Running())
}

func TestController_Start_RateLimitedPrecheckIsNotAuthFailure(t *testing.T) {
	t.Parallel()

	src := newFakeSource(t)
	src.MockAccessChecker.EXPECT().CheckAccess(mock.Anything, "g1").
		Return(fmt.Errorf("rate limit: %w (200/200)", graph.ErrHourlyLimitReached)).Once()

	c, _ := newController(t, writeCreds(t, "tok"), src, notifymocks.NewMockNotifier(t))

	_, err := c.Start(context.Background(), validSettings())
	require.ErrorIs(t, err, control.ErrRateLimited)
	require.NotErrorIs(t, err, control.ErrAuthenticationRejected)
	assert.Contains(t, err.Error(), "group g1")
	assert.False(t, c.Running())
}
