package service

import (
	"alcyxob/ai-trainer/internal/domain"
	"alcyxob/ai-trainer/internal/repository"
	"context"
	"errors"
	"maps"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for the Mongo collections. Its
// Transactor snapshots every map and restores them when fn fails.
type memStore struct {
	mu        sync.Mutex
	users     map[primitive.ObjectID]domain.User
	profiles  map[primitive.ObjectID]domain.Profile
	equipment map[primitive.ObjectID]domain.Equipment
	locations map[primitive.ObjectID]domain.Location
	weights   map[primitive.ObjectID]domain.WeightEntry
	plans     map[primitive.ObjectID]domain.WorkoutPlan
	queries   map[string]domain.GeneratedQuery
	sessions  map[primitive.ObjectID]domain.WorkoutSession
	exercises map[primitive.ObjectID]domain.Exercise

	// failExerciseCreates makes every Exercises.Create after the first n fail.
	failExerciseCreates int
	exerciseCreates     int
}

func newMemStore() *memStore {
	return &memStore{
		users:               map[primitive.ObjectID]domain.User{},
		profiles:            map[primitive.ObjectID]domain.Profile{},
		equipment:           map[primitive.ObjectID]domain.Equipment{},
		locations:           map[primitive.ObjectID]domain.Location{},
		weights:             map[primitive.ObjectID]domain.WeightEntry{},
		plans:               map[primitive.ObjectID]domain.WorkoutPlan{},
		queries:             map[string]domain.GeneratedQuery{},
		sessions:            map[primitive.ObjectID]domain.WorkoutSession{},
		exercises:           map[primitive.ObjectID]domain.Exercise{},
		failExerciseCreates: -1,
	}
}

func (m *memStore) repos() PlanRepositories {
	return PlanRepositories{
		Tx:        m,
		Profiles:  memProfiles{m},
		Locations: memLocations{m},
		Equipment: memEquipment{m},
		Plans:     memPlans{m},
		Queries:   memQueries{m},
		Sessions:  memSessions{m},
		Exercises: memExercises{m},
	}
}

func (m *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	users, profiles, equipment := maps.Clone(m.users), maps.Clone(m.profiles), maps.Clone(m.equipment)
	locations, weights, plans := maps.Clone(m.locations), maps.Clone(m.weights), maps.Clone(m.plans)
	queries, sessions, exercises := maps.Clone(m.queries), maps.Clone(m.sessions), maps.Clone(m.exercises)
	m.mu.Unlock()

	err := fn(ctx)
	if err != nil {
		m.mu.Lock()
		m.users, m.profiles, m.equipment = users, profiles, equipment
		m.locations, m.weights, m.plans = locations, weights, plans
		m.queries, m.sessions, m.exercises = queries, sessions, exercises
		m.mu.Unlock()
	}
	return err
}

var errInjected = errors.New("injected failure")

// --- users ---

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	u.ID = primitive.NewObjectID()
	r.users[u.ID] = *u
	return u.ID, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

// --- profiles ---

type memProfiles struct{ *memStore }

func (r memProfiles) Create(_ context.Context, p *domain.Profile) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = primitive.NewObjectID()
	r.profiles[p.ID] = *p
	return p.ID, nil
}

func (r memProfiles) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[id]; ok {
		return &p, nil
	}
	return nil, repository.ErrNotFound
}

func (r memProfiles) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memProfiles) Update(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; !ok {
		return repository.ErrNotFound
	}
	r.profiles[p.ID] = *p
	return nil
}

// --- catalog ---

type memEquipment struct{ *memStore }

func (r memEquipment) Create(_ context.Context, e *domain.Equipment) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.Normalize()
	for _, existing := range r.equipment {
		if e.Name != "" && existing.Name == e.Name {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	e.ID = primitive.NewObjectID()
	r.equipment[e.ID] = *e
	return e.ID, nil
}

func (r memEquipment) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.equipment[id]; ok {
		return &e, nil
	}
	return nil, repository.ErrNotFound
}

func (r memEquipment) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Equipment{}
	seen := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		if e, ok := r.equipment[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, e)
		}
	}
	return out, nil
}

func (r memEquipment) GetByName(_ context.Context, name string) (*domain.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.equipment {
		if e.Name == name {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memEquipment) List(_ context.Context) ([]domain.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.equipment, func(a, b domain.Equipment) bool { return a.Name < b.Name }), nil
}

type memLocations struct{ *memStore }

func (r memLocations) Create(_ context.Context, l *domain.Location) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = primitive.NewObjectID()
	r.locations[l.ID] = *l
	return l.ID, nil
}

func (r memLocations) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locations[id]; ok {
		return &l, nil
	}
	return nil, repository.ErrNotFound
}

func (r memLocations) GetByName(_ context.Context, name string) (*domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.locations {
		if l.Name == name {
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memLocations) List(_ context.Context) ([]domain.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedValues(r.locations, func(a, b domain.Location) bool { return a.Name < b.Name }), nil
}

func (r memLocations) AddEquipment(_ context.Context, id primitive.ObjectID, equipmentIDs []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locations[id]
	if !ok {
		return repository.ErrNotFound
	}
	ids := append([]primitive.ObjectID{}, l.EquipmentIDs...)
	for _, e := range equipmentIDs {
		found := false
		for _, have := range ids {
			found = found || have == e
		}
		if !found {
			ids = append(ids, e)
		}
	}
	l.EquipmentIDs = ids
	r.locations[id] = l
	return nil
}

// --- weights ---

type memWeights struct{ *memStore }

func (r memWeights) Create(_ context.Context, w *domain.WeightEntry) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = primitive.NewObjectID()
	r.weights[w.ID] = *w
	return w.ID, nil
}

func (r memWeights) ListLatest(_ context.Context, profileID primitive.ObjectID, limit int) ([]domain.WeightEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.WeightEntry{}
	for _, w := range r.weights {
		if w.ProfileID == profileID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memWeights) Delete(_ context.Context, id, profileID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.weights[id]; !ok || w.ProfileID != profileID {
		return repository.ErrNotFound
	}
	delete(r.weights, id)
	return nil
}

// --- plans and queries ---

type memPlans struct{ *memStore }

func (r memPlans) Create(_ context.Context, p *domain.WorkoutPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.plans {
		if existing.GroupID == p.GroupID {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	if p.ID == primitive.NilObjectID {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = time.Now()
	cp := *p
	cp.SessionIDs = append([]primitive.ObjectID{}, p.SessionIDs...)
	r.plans[p.ID] = cp
	return p.ID, nil
}

func (r memPlans) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.plans[id]; ok {
		return &p, nil
	}
	return nil, repository.ErrNotFound
}

func (r memPlans) GetByGroupID(_ context.Context, groupID string) (*domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.GroupID == groupID {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memPlans) GroupIDExists(ctx context.Context, groupID string) (bool, error) {
	_, err := r.GetByGroupID(ctx, groupID)
	return err == nil, nil
}

func (r memPlans) ListByProfileID(_ context.Context, profileID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.WorkoutPlan{}
	for _, p := range r.plans {
		if p.ProfileID == profileID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memPlans) ReplaceSession(_ context.Context, planID, oldID, newID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[planID]
	if !ok {
		return repository.ErrNotFound
	}
	ids := append([]primitive.ObjectID{}, p.SessionIDs...)
	for i, id := range ids {
		if id == oldID {
			ids[i] = newID
			p.SessionIDs = ids
			r.plans[planID] = p
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r memPlans) RemoveSession(_ context.Context, planID, sessionID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[planID]
	if !ok {
		return repository.ErrNotFound
	}
	ids := []primitive.ObjectID{}
	for _, id := range p.SessionIDs {
		if id != sessionID {
			ids = append(ids, id)
		}
	}
	p.SessionIDs = ids
	r.plans[planID] = p
	return nil
}

func (r memPlans) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

type memQueries struct{ *memStore }

func (r memQueries) Create(_ context.Context, q *domain.GeneratedQuery) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.queries[q.GroupID]; ok {
		return primitive.NilObjectID, repository.ErrDuplicateKey
	}
	q.ID = primitive.NewObjectID()
	r.queries[q.GroupID] = *q
	return q.ID, nil
}

func (r memQueries) GetByGroupID(_ context.Context, groupID string) (*domain.GeneratedQuery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.queries[groupID]; ok {
		return &q, nil
	}
	return nil, repository.ErrNotFound
}

// --- sessions and exercises ---

type memSessions struct{ *memStore }

func (r memSessions) Create(_ context.Context, s *domain.WorkoutSession) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Name == "" || s.Date.IsZero() {
		return primitive.NilObjectID, errors.New("session requires name and date")
	}
	if s.ID == primitive.NilObjectID {
		s.ID = primitive.NewObjectID()
	}
	r.sessions[s.ID] = *s
	return s.ID, nil
}

func (r memSessions) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return &s, nil
	}
	return nil, repository.ErrNotFound
}

func (r memSessions) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.WorkoutSession{}
	for _, s := range r.sessions {
		if s.PlanID == planID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r memSessions) ListLatestByProfileID(_ context.Context, profileID primitive.ObjectID, limit int) ([]domain.WorkoutSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.WorkoutSession{}
	for _, s := range r.sessions {
		if s.ProfileID == profileID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memSessions) UpdateFeedback(_ context.Context, id primitive.ObjectID, f domain.SessionFeedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	if f.Completed != nil {
		s.Completed = *f.Completed
	}
	if f.TimeTakenMinutes != nil {
		s.TimeTakenMinutes = f.TimeTakenMinutes
	}
	if f.DifficultyRating != nil {
		s.DifficultyRating = f.DifficultyRating
	}
	if f.EnjoymentRating != nil {
		s.EnjoymentRating = f.EnjoymentRating
	}
	r.sessions[id] = s
	return nil
}

func (r memSessions) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r memSessions) DeleteByPlanID(_ context.Context, planID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.PlanID == planID {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

type memExercises struct{ *memStore }

func (r memExercises) Create(_ context.Context, e *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failExerciseCreates >= 0 && r.exerciseCreates >= r.failExerciseCreates {
		return primitive.NilObjectID, errInjected
	}
	r.exerciseCreates++
	e.ID = primitive.NewObjectID()
	r.exercises[e.ID] = *e
	return e.ID, nil
}

func (r memExercises) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.exercises[id]; ok {
		return &e, nil
	}
	return nil, repository.ErrNotFound
}

func (r memExercises) GetByWorkoutIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []domain.Exercise{}
	for _, e := range r.exercises {
		if want[e.WorkoutID] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (r memExercises) UpdateActualWeight(_ context.Context, id primitive.ObjectID, weight string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exercises[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.ActualWeight = weight
	r.exercises[id] = e
	return nil
}

func (r memExercises) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

func (r memExercises) DeleteByWorkoutIDs(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var n int64
	for id, e := range r.exercises {
		if want[e.WorkoutID] {
			delete(r.exercises, id)
			n++
		}
	}
	return n, nil
}

func sortedValues[K comparable, V any](m map[K]V, less func(a, b V) bool) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// --- generation and storage ---

type fakeGenerator struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	r := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return r, nil
}

func (g *fakeGenerator) lastPrompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return ""
	}
	return g.prompts[len(g.prompts)-1]
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage { return &fakeStorage{objects: map[string][]byte{}} }

func (f *fakeStorage) PutObject(_ context.Context, key, _ string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = append([]byte{}, body...)
	return nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key + "?signed=1", nil
}
