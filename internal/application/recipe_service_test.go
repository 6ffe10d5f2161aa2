package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipehub/recipehub/internal/domain/entity"
	repo "github.com/recipehub/recipehub/internal/domain/repository"
)

type fakeRecipeRepo struct {
	mu          sync.Mutex
	records     map[string]*entity.RecipeWithOwner
	ownerEmails map[string]string
	seq         int
	failCreate  error
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{
		records:     map[string]*entity.RecipeWithOwner{},
		ownerEmails: map[string]string{},
	}
}

func (f *fakeRecipeRepo) Create(ctx context.Context, r *entity.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return f.failCreate
	}
	f.seq++
	r.ID = fmt.Sprintf("rec-%d", f.seq)
	r.CreatedAt = time.Now().Add(time.Duration(f.seq) * time.Millisecond)
	cp := *r
	cp.Ingredients = append([]string(nil), r.Ingredients...)
	cp.Instructions = append([]string(nil), r.Instructions...)
	f.records[r.ID] = &entity.RecipeWithOwner{Recipe: cp, OwnerEmail: f.ownerEmails[r.CreatedBy]}
	return nil
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, id string) (*entity.RecipeWithOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecipeRepo) List(ctx context.Context) ([]entity.RecipeWithOwner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.RecipeWithOwner, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRecipeRepo) Update(ctx context.Context, r *entity.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.records[r.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cp := *r
	f.records[r.ID] = &entity.RecipeWithOwner{Recipe: cp, OwnerEmail: existing.OwnerEmail}
	return nil
}

func (f *fakeRecipeRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

type memImages struct {
	saved   map[string][]byte
	removed []string
}

func newMemImages() *memImages { return &memImages{saved: map[string][]byte{}} }

func (m *memImages) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", "", err
	}
	ref := fmt.Sprintf("%d-%s", len(m.saved)+1, filename)
	m.saved[ref] = b
	return "/uploads/" + ref, ref, nil
}

func (m *memImages) Remove(ctx context.Context, ref string) error {
	m.removed = append(m.removed, ref)
	delete(m.saved, ref)
	return nil
}

func newTestService(r *fakeRecipeRepo, imgs *memImages) *RecipeService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRecipeService(r, imgs, logger, nil, "")
}

func validInput() RecipeInput {
	return RecipeInput{
		Title:        "Pancakes",
		Cuisine:      "American",
		Ingredients:  []string{"flour", "milk", "egg"},
		Instructions: []string{"Mix", "Cook"},
	}
}

func TestCreateSetsOwnerAndTimestamp(t *testing.T) {
	svc := newTestService(newFakeRecipeRepo(), newMemImages())
	before := time.Now()

	rec, err := svc.Create(context.Background(), validInput(), "user-u")
	require.NoError(t, err)
	assert.Equal(t, "user-u", rec.CreatedBy)
	assert.False(t, rec.CreatedAt.Before(before))
	assert.NotEmpty(t, rec.ID)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(newFakeRecipeRepo(), newMemImages())

	cases := map[string]RecipeInput{
		"missing title":      {Cuisine: "American", Ingredients: []string{"x"}, Instructions: []string{"y"}},
		"missing cuisine":    {Title: "T", Ingredients: []string{"x"}, Instructions: []string{"y"}},
		"empty ingredients":  {Title: "T", Cuisine: "C", Ingredients: []string{}, Instructions: []string{"y"}},
		"empty instructions": {Title: "T", Cuisine: "C", Ingredients: []string{"x"}, Instructions: nil},
		"blank line":         {Title: "T", Cuisine: "C", Ingredients: []string{"x", "  "}, Instructions: []string{"y"}},
	}
	for name, in := range cases {
		_, err := svc.Create(context.Background(), in, "user-u")
		assert.ErrorIs(t, err, ErrMissingFields, name)
	}
}

func TestUpdateNotFoundBeforeOwnership(t *testing.T) {
	svc := newTestService(newFakeRecipeRepo(), newMemImages())

	_, err := svc.Update(context.Background(), "missing", validInput(), "anyone")
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	err = svc.Delete(context.Background(), "missing", "anyone")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestUpdateDeleteWrongOwner(t *testing.T) {
	svc := newTestService(newFakeRecipeRepo(), newMemImages())

	rec, err := svc.Create(context.Background(), validInput(), "user-u")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), rec.ID, validInput(), "user-v")
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Delete(context.Background(), rec.ID, "user-v")
	assert.ErrorIs(t, err, ErrNotOwner)
}

// Ownership wins over field validation: a non-owner gets the authorization
// error no matter what body they send, and a missing id reports not-found.
func TestUpdateCheckOrder(t *testing.T) {
	svc := newTestService(newFakeRecipeRepo(), newMemImages())
	ctx := context.Background()

	rec, err := svc.Create(ctx, validInput(), "user-u")
	require.NoError(t, err)

	_, err = svc.Update(ctx, rec.ID, RecipeInput{}, "user-v")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Update(ctx, "missing", RecipeInput{}, "user-u")
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	// The owner with an invalid body still gets the validation error.
	_, err = svc.Update(ctx, rec.ID, RecipeInput{}, "user-u")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestUnownedRecipeImmutable(t *testing.T) {
	repoFake := newFakeRecipeRepo()
	svc := newTestService(repoFake, newMemImages())

	// Seeded outside user action: no owner.
	repoFake.records["seeded"] = &entity.RecipeWithOwner{Recipe: entity.Recipe{
		ID: "seeded", Title: "Miso Soup", Cuisine: "Japanese",
		Ingredients: []string{"dashi"}, Instructions: []string{"warm"},
	}}

	_, err := svc.Update(context.Background(), "seeded", validInput(), "")
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.Delete(context.Background(), "seeded", "user-u")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(newFakeRecipeRepo(), newMemImages())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		in := validInput()
		in.Title = fmt.Sprintf("Recipe %d", i)
		_, err := svc.Create(ctx, in, "user-u")
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.True(t, !list[i-1].CreatedAt.Before(list[i].CreatedAt), "list must descend by createdAt")
	}
	assert.Equal(t, "Recipe 2", list[0].Title)
}

func TestRoundTripPreservesOrder(t *testing.T) {
	svc := newTestService(newFakeRecipeRepo(), newMemImages())
	ctx := context.Background()

	in := validInput()
	in.Ingredients = []string{"2 eggs", "1 cup flour"}
	in.Instructions = []string{"Mix", "Bake"}

	rec, err := svc.Create(ctx, in, "user-u")
	require.NoError(t, err)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2 eggs", "1 cup flour"}, got.Ingredients)
	assert.Equal(t, []string{"Mix", "Bake"}, got.Instructions)
}

func TestCreateWithImage(t *testing.T) {
	imgs := newMemImages()
	svc := newTestService(newFakeRecipeRepo(), imgs)

	in := validInput()
	in.Image = &ImageUpload{Filename: "pancakes.jpg", ContentType: "image/jpeg", Data: bytes.NewReader([]byte("jpeg"))}

	rec, err := svc.Create(context.Background(), in, "user-u")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rec.ImageURL, "/uploads/"))
	assert.Len(t, imgs.saved, 1)
}

func TestCreateCompensatesImageOnRecordFailure(t *testing.T) {
	repoFake := newFakeRecipeRepo()
	repoFake.failCreate = errors.New("store unreachable")
	imgs := newMemImages()
	svc := newTestService(repoFake, imgs)

	in := validInput()
	in.Image = &ImageUpload{Filename: "pancakes.jpg", ContentType: "image/jpeg", Data: bytes.NewReader([]byte("jpeg"))}

	_, err := svc.Create(context.Background(), in, "user-u")
	require.Error(t, err)
	assert.Len(t, imgs.removed, 1, "orphaned image should be removed")
	assert.Empty(t, imgs.saved)
}

func TestUpdateKeepsImageWithoutNewPayload(t *testing.T) {
	svc := newTestService(newFakeRecipeRepo(), newMemImages())
	ctx := context.Background()

	in := validInput()
	in.Image = &ImageUpload{Filename: "a.jpg", ContentType: "image/jpeg", Data: bytes.NewReader([]byte("a"))}
	rec, err := svc.Create(ctx, in, "user-u")
	require.NoError(t, err)
	require.NotEmpty(t, rec.ImageURL)

	updated, err := svc.Update(ctx, rec.ID, validInput(), "user-u")
	require.NoError(t, err)
	assert.Equal(t, rec.ImageURL, updated.ImageURL)
}

func TestUpdateImmutableFields(t *testing.T) {
	svc := newTestService(newFakeRecipeRepo(), newMemImages())
	ctx := context.Background()

	rec, err := svc.Create(ctx, validInput(), "user-u")
	require.NoError(t, err)

	in := validInput()
	in.Title = "Renamed"
	updated, err := svc.Update(ctx, rec.ID, in, "user-u")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, rec.CreatedBy, updated.CreatedBy)
	assert.Equal(t, rec.CreatedAt, updated.CreatedAt)
}

func TestOwnershipScenario(t *testing.T) {
	svc := newTestService(newFakeRecipeRepo(), newMemImages())
	ctx := context.Background()

	in := RecipeInput{
		Title:        "Pancakes",
		Cuisine:      "American",
		Ingredients:  []string{"flour", "milk", "egg"},
		Instructions: []string{"Mix", "Cook"},
	}
	rec, err := svc.Create(ctx, in, "U")
	require.NoError(t, err)
	assert.Equal(t, "U", rec.CreatedBy)

	_, err = svc.Update(ctx, rec.ID, in, "V")
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.Delete(ctx, rec.ID, "U"))

	_, err = svc.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}
