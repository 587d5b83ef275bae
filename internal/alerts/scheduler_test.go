package alerts_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/harbor/internal/alerts"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/alexanderramin/harbor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func wednesdayPlan(opts ...testutil.PlanOption) *domain.PlanState {
	base := []testutil.PlanOption{
		testutil.WithItems(domain.CollectionMeals,
			testutil.NewTestItem("Breakfast", "08:00", 3, testutil.WithNotes("Warm tea")),
			testutil.NewTestItem("Lunch", "12:30", 3),
			testutil.NewTestItem("Tuesday lunch", "12:30", 2),
		),
		testutil.WithItems(domain.CollectionMeds,
			testutil.NewTestItem("Aspirin", "09:00", 3, testutil.WithDosage("81mg")),
		),
		testutil.WithItems(domain.CollectionReminders,
			testutil.NewTestItem("Hydration", "10:00", 3, testutil.WithTone("gentle")),
		),
	}
	return testutil.NewEmptyPlan(append(base, opts...)...)
}

func TestPlanFires_OnlyFutureItemsToday(t *testing.T) {
	now := testutil.Wednesday(8, 30)

	fires := alerts.PlanFires(wednesdayPlan(), now)

	require.Len(t, fires, 3)
	assert.Equal(t, "Medication: Aspirin", fires[0].Title)
	assert.Equal(t, "81mg", fires[0].Body)
	assert.Equal(t, 30*time.Minute, fires[0].Delay)
	assert.Equal(t, "Reminder: Hydration", fires[1].Title)
	assert.Equal(t, "", fires[1].Body)
	assert.Equal(t, "Meal: Lunch", fires[2].Title)
	assert.Equal(t, testutil.Wednesday(12, 30), fires[2].At)
}

func TestPlanFires_ExactNowIsPast(t *testing.T) {
	fires := alerts.PlanFires(wednesdayPlan(), testutil.Wednesday(12, 30))
	assert.Empty(t, fires)
}

func TestPlanFires_BodyPrefersNotes(t *testing.T) {
	fires := alerts.PlanFires(wednesdayPlan(), testutil.Wednesday(7, 0))
	require.NotEmpty(t, fires)
	assert.Equal(t, "Meal: Breakfast", fires[0].Title)
	assert.Equal(t, "Warm tea", fires[0].Body)
}

func TestSchedule_DisabledArmsNothing(t *testing.T) {
	timers := &testutil.FakeTimers{}
	notifier := testutil.NewFakeNotifier(alerts.PermissionGranted)
	notifier.Current = alerts.PermissionGranted
	s := alerts.NewScheduler(timers, notifier, nil)

	res := s.Schedule(context.Background(), wednesdayPlan(), testutil.Wednesday(7, 0))

	assert.Empty(t, res.Armed)
	assert.False(t, res.Disabled)
	assert.Empty(t, timers.All())
}

func TestSchedule_WithoutPermissionClearsFlag(t *testing.T) {
	for _, perm := range []alerts.Permission{alerts.PermissionDefault, alerts.PermissionDenied} {
		t.Run(string(perm), func(t *testing.T) {
			timers := &testutil.FakeTimers{}
			notifier := testutil.NewFakeNotifier(alerts.PermissionDenied)
			notifier.Current = perm
			s := alerts.NewScheduler(timers, notifier, nil)
			p := wednesdayPlan(testutil.WithAlertsEnabled())

			res := s.Schedule(context.Background(), p, testutil.Wednesday(7, 0))

			assert.True(t, res.Disabled)
			assert.Equal(t, perm, res.Permission)
			assert.False(t, p.AlertsEnabled)
			assert.Empty(t, timers.All())
			assert.Zero(t, notifier.Requests, "schedule never asks for permission")
		})
	}
}

func TestSchedule_UnsupportedDisplayKeepsFlag(t *testing.T) {
	timers := &testutil.FakeTimers{}
	notifier := testutil.NewFakeNotifier(alerts.PermissionGranted)
	notifier.Current = alerts.PermissionUnsupported
	s := alerts.NewScheduler(timers, notifier, nil)
	p := wednesdayPlan(testutil.WithAlertsEnabled())

	res := s.Schedule(context.Background(), p, testutil.Wednesday(7, 0))

	assert.False(t, res.Disabled)
	assert.Equal(t, alerts.PermissionUnsupported, res.Permission)
	assert.True(t, p.AlertsEnabled)
	assert.Empty(t, res.Armed)
	assert.Empty(t, timers.All())
}

func TestSchedule_ArmsAndFires(t *testing.T) {
	timers := &testutil.FakeTimers{}
	notifier := testutil.NewFakeNotifier(alerts.PermissionGranted)
	notifier.Current = alerts.PermissionGranted
	s := alerts.NewScheduler(timers, notifier, nil)

	res := s.Schedule(context.Background(), wednesdayPlan(testutil.WithAlertsEnabled()), testutil.Wednesday(8, 30))

	require.Len(t, res.Armed, 3)
	active := timers.Active()
	require.Len(t, active, 3)
	assert.Equal(t, 30*time.Minute, active[0].Delay)

	active[0].Fire()
	assert.Equal(t, []testutil.Shown{{Title: "Medication: Aspirin", Body: "81mg"}}, notifier.Shown())
}

func TestSchedule_IdempotentForSameInputs(t *testing.T) {
	timers := &testutil.FakeTimers{}
	notifier := testutil.NewFakeNotifier(alerts.PermissionGranted)
	notifier.Current = alerts.PermissionGranted
	s := alerts.NewScheduler(timers, notifier, nil)
	p := wednesdayPlan(testutil.WithAlertsEnabled())
	now := testutil.Wednesday(8, 30)

	first := s.Schedule(context.Background(), p, now)
	second := s.Schedule(context.Background(), p, now)

	assert.Equal(t, first.Armed, second.Armed)
	assert.Len(t, timers.All(), 6)
	assert.Len(t, timers.Active(), 3, "re-scheduling must not leave duplicates armed")
	assert.Equal(t, second.Armed, s.Armed())
}

func TestCancelAll_StopsAndSilencesLateFires(t *testing.T) {
	timers := &testutil.FakeTimers{}
	notifier := testutil.NewFakeNotifier(alerts.PermissionGranted)
	notifier.Current = alerts.PermissionGranted
	s := alerts.NewScheduler(timers, notifier, nil)
	s.Schedule(context.Background(), wednesdayPlan(testutil.WithAlertsEnabled()), testutil.Wednesday(8, 30))

	s.CancelAll()
	s.CancelAll()

	assert.Empty(t, timers.Active())
	assert.Empty(t, s.Armed())
	for _, tm := range timers.All() {
		tm.Fire()
	}
	assert.Empty(t, notifier.Shown(), "cancelled timers must not notify")
}

func TestSchedule_RealTimersFireAndCancel(t *testing.T) {
	notifier := testutil.NewFakeNotifier(alerts.PermissionGranted)
	notifier.Current = alerts.PermissionGranted
	s := alerts.NewScheduler(alerts.RealTimers{}, notifier, nil)

	// Just before 09:00 so the Aspirin alert fires almost immediately.
	now := testutil.Wednesday(9, 0).Add(-20 * time.Millisecond)
	res := s.Schedule(context.Background(), wednesdayPlan(testutil.WithAlertsEnabled()), now)
	require.Len(t, res.Armed, 3)

	require.Eventually(t, func() bool { return len(notifier.Shown()) == 1 }, time.Second, 5*time.Millisecond)
	s.CancelAll()
	assert.Equal(t, "Medication: Aspirin", notifier.Shown()[0].Title)
}

func TestScheduler_ConcurrentScheduleAndCancel(t *testing.T) {
	timers := &testutil.FakeTimers{}
	notifier := testutil.NewFakeNotifier(alerts.PermissionGranted)
	notifier.Current = alerts.PermissionGranted
	s := alerts.NewScheduler(timers, notifier, nil)
	now := testutil.Wednesday(8, 30)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Schedule(context.Background(), wednesdayPlan(testutil.WithAlertsEnabled()), now)
			s.CancelAll()
		}()
	}
	wg.Wait()
	assert.Empty(t, timers.Active())
}
