package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/alexanderramin/harbor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planRepoSetup(t *testing.T) (*DocumentPlanRepo, *SQLiteDocumentRepo) {
	t.Helper()
	docs := NewSQLiteDocumentRepo(testutil.NewTestDB(t))
	repo := NewDocumentPlanRepo(docs, domain.FixedClock(testutil.Wednesday(9, 0)), testutil.SeqIDs("seed"), nil)
	return repo, docs
}

func TestDocumentRepo_GetSetDelete(t *testing.T) {
	_, docs := planRepoSetup(t)
	ctx := context.Background()

	_, ok, err := docs.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, docs.Set(ctx, "k", "v1"))
	require.NoError(t, docs.Set(ctx, "k", "v2"))
	body, ok, err := docs.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", body)

	require.NoError(t, docs.Delete(ctx, "k"))
	assert.ErrorIs(t, docs.Delete(ctx, "k"), ErrNotFound)
}

func TestPlanRepo_Load_AbsentYieldsSeededDefault(t *testing.T) {
	repo, _ := planRepoSetup(t)

	p, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, p.Meals, 1)
	assert.Equal(t, 3, p.Meals[0].Day, "seeded on Wednesday")
	assert.Equal(t, "seed-1", p.Meals[0].ID)
}

func TestPlanRepo_Load_UnparseableYieldsDefault(t *testing.T) {
	repo, docs := planRepoSetup(t)
	ctx := context.Background()
	require.NoError(t, docs.Set(ctx, PlanKey, "{not json"))

	p, src, err := repo.LoadWithSource(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, src)
	assert.Len(t, p.Meals, 1)
	assert.Equal(t, domain.ModeCaregiver, p.Mode)

	kept, ok, err := docs.Get(ctx, UnreadablePlanKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{not json", kept)
}

func TestPlanRepo_Load_MistypedFieldKeepsUserData(t *testing.T) {
	repo, docs := planRepoSetup(t)
	ctx := context.Background()
	stored := `{"meals":[{"id":"m1","title":"Soup","time":"18:00","day":3}],` +
		`"meds":[{"id":"d1","title":"Aspirin","time":"09:00","dosage":81,"day":3}],"notes":"keep me"}`
	require.NoError(t, docs.Set(ctx, PlanKey, stored))

	p, src, err := repo.LoadWithSource(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceStored, src)
	require.Len(t, p.Meals, 1)
	assert.Equal(t, "m1", p.Meals[0].ID)
	require.Len(t, p.Meds, 1)
	assert.Equal(t, "81", p.Meds[0].Dosage)
	assert.Equal(t, "keep me", p.Notes)

	_, ok, err := docs.Get(ctx, UnreadablePlanKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlanRepo_Load_Sources(t *testing.T) {
	repo, _ := planRepoSetup(t)
	ctx := context.Background()

	p, src, err := repo.LoadWithSource(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceSeeded, src)

	require.NoError(t, repo.Save(ctx, p))
	_, src, err = repo.LoadWithSource(ctx)
	require.NoError(t, err)
	assert.Equal(t, SourceStored, src)
}

func TestPlanRepo_SaveLoad_RoundTrip(t *testing.T) {
	repo, _ := planRepoSetup(t)
	ctx := context.Background()

	p := testutil.NewEmptyPlan(
		testutil.WithItems(domain.CollectionMeds, testutil.NewTestItem("Aspirin", "09:00", 1, testutil.WithDosage("81mg"))),
		testutil.WithItems(domain.CollectionReminders, testutil.NewTestItem("Stretch", "7:15", 0, testutil.WithTone("upbeat"))),
		testutil.WithAlertsEnabled(),
	)
	p.Notes = "Likes jazz"
	p.Safety.AvoidFoods = "Shellfish"

	require.NoError(t, repo.Save(ctx, p))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)

	want := p.Clone()
	want.Normalize(3)
	assert.Equal(t, want, loaded)
	assert.Equal(t, "07:15", loaded.Reminders[0].Time)
}

func TestPlanRepo_Load_LegacyDocumentBackfillsDay(t *testing.T) {
	repo, docs := planRepoSetup(t)
	ctx := context.Background()
	legacy := `{"meals":[{"id":"a","title":"Soup","time":"18:00"}],"exercises":[],"reminders":[],"notes":"","safety":{},"mode":"patient","view":"week"}`
	require.NoError(t, docs.Set(ctx, PlanKey, legacy))

	p, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Meals[0].Day)
	assert.NotNil(t, p.Meds)
	assert.False(t, p.AlertsEnabled)
	assert.Equal(t, domain.ViewToday, p.View)
}
