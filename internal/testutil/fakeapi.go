package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/paging"
)

const (
	RefreshCookieName = "refreshToken"

	fakeSigningMethod = "HS256"
)

type fakeUser struct {
	user models.User
	hash []byte
}

// FakeAPI is an in-process backend speaking the admin API protocol:
// JWT access tokens, refresh cookie, X-Pagination lists and a handful of resources
type FakeAPI struct {
	Server *httptest.Server

	// Lifetime reported to clients in AuthResponse
	ExpirationMinutes int

	mu         sync.Mutex
	key        []byte
	users      map[string]fakeUser
	refresh    map[string]int64
	events     []models.Event
	eventTypes []models.EventType
	guests     []models.Guest
	categories []models.BeverageCategory
	failures   map[string][]int
	calls      map[string]int
	nextID     int64
}

// Start fake backend. It is closed on test cleanup
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		ExpirationMinutes: 60,
		key:               randomKey(),
		users:             make(map[string]fakeUser),
		refresh:           make(map[string]int64),
		failures:          make(map[string][]int),
		calls:             make(map[string]int),
		nextID:            100,
	}

	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Server.Close)

	return f
}

func randomKey() []byte {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return b
}

func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// Register user that may authenticate with email and password
func (f *FakeAPI) AddUser(t *testing.T, email string, password string, name string, role string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	u := models.User{ID: f.nextID, Name: name, Email: email, RoleName: role}
	f.users[email] = fakeUser{user: u, hash: hash}
	return u
}

func (f *FakeAPI) AddEvent(ev models.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *FakeAPI) AddEventType(et models.EventType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventTypes = append(f.eventTypes, et)
}

func (f *FakeAPI) AddGuest(g models.Guest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guests = append(f.guests, g)
}

func (f *FakeAPI) Guest(id int64) (models.Guest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, g := range f.guests {
		if g.ID == id {
			return g, true
		}
	}
	return models.Guest{}, false
}

// Answer the next requests to path with given statuses, one status per request
func (f *FakeAPI) FailNext(path string, statuses ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = append(f.failures[path], statuses...)
}

// Make every issued access token invalid. Refresh cookies stay valid
func (f *FakeAPI) RevokeAccessTokens() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.key = randomKey()
}

func (f *FakeAPI) RevokeRefreshTokens() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.refresh)
}

// Number of requests served for exact path
func (f *FakeAPI) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *FakeAPI) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /Auth/Authenticate", f.handleAuthenticate)
	mux.HandleFunc("POST /Auth/Refresh", f.handleRefresh)
	mux.HandleFunc("POST /Auth/Logout", f.handleLogout)

	mux.Handle("GET /Events", f.withAuth(f.handleEvents))
	mux.Handle("GET /Events/Get/{id}", f.withAuth(f.handleEvent))
	mux.Handle("GET /Events/Types", f.withAuth(f.handleEventTypes))
	mux.Handle("GET /Guests", f.withAuth(f.handleGuests))
	mux.Handle("POST /Guests/Confirm/{id}", f.withAuth(f.handleConfirmPresence))
	mux.Handle("POST /Guests/Arrived/{id}", f.withAuth(f.handleArrival(true)))
	mux.Handle("POST /Guests/CancelArrived/{id}", f.withAuth(f.handleArrival(false)))
	mux.Handle("POST /Users/Heartbeat", f.withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	mux.Handle("GET /Statistics/dashboard/{eventId}", f.withAuth(f.handleDashboard))
	mux.Handle("GET /BeverageCatalog/categories", f.withAuth(f.handleCategories))
	mux.Handle("POST /BeverageCatalog/categories", f.withAuth(f.handleCreateCategory))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.URL.Path]++
		var status int
		if queued := f.failures[r.URL.Path]; len(queued) > 0 {
			status, f.failures[r.URL.Path] = queued[0], queued[1:]
		}
		f.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *FakeAPI) issue(w http.ResponseWriter, u models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	token := jwt.NewWithClaims(jwt.GetSigningMethod(fakeSigningMethod), jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(u.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(f.ExpirationMinutes) * time.Minute)),
		ID:        hex.EncodeToString(randomKey()[:8]),
	})
	access, err := token.SignedString(f.key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	refresh := hex.EncodeToString(randomKey()[:16])
	f.refresh[refresh] = u.ID

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    refresh,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, models.AuthResponse{User: u, Token: access, ExpirationMinutes: f.ExpirationMinutes})
}

func (f *FakeAPI) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	fu, ok := f.users[in.Email]
	f.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(fu.hash, []byte(in.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	f.issue(w, fu.user)
}

func (f *FakeAPI) userByID(id int64) (models.User, bool) {
	for _, fu := range f.users {
		if fu.user.ID == id {
			return fu.user, true
		}
	}
	return models.User{}, false
}

// Refresh rotates the refresh cookie: the presented one can't be used again
func (f *FakeAPI) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil {
		http.Error(w, "no refresh token", http.StatusUnauthorized)
		return
	}

	f.mu.Lock()
	userID, ok := f.refresh[cookie.Value]
	delete(f.refresh, cookie.Value)
	u, found := f.userByID(userID)
	f.mu.Unlock()

	if !ok || !found {
		http.Error(w, "refresh token is not valid", http.StatusUnauthorized)
		return
	}

	f.issue(w, u)
}

func (f *FakeAPI) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(RefreshCookieName); err == nil {
		f.mu.Lock()
		delete(f.refresh, cookie.Value)
		f.mu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{Name: RefreshCookieName, Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) withAuth(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		f.mu.Lock()
		key := f.key
		f.mu.Unlock()

		_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{fakeSigningMethod}), jwt.WithExpirationRequired())
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		h(w, r)
	})
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// Write one page of items with pagination in header
func writePage[T any](w http.ResponseWriter, r *http.Request, items []T, info models.PageInfo) {
	number := queryInt(r, "pageNumber", 1)
	size := queryInt(r, "pageSize", 10)

	info.TotalCount = len(items)
	info.PageSize = size
	info.CurrentPage = number
	info.TotalPages = max(1, (len(items)+size-1)/size)

	start := min(len(items), (number-1)*size)
	end := min(len(items), start+size)

	header, _ := json.Marshal(info)
	w.Header().Set(paging.Header, string(header))
	writeJSON(w, http.StatusOK, items[start:end])
}

func matches(name string, search string) bool {
	return search == "" || strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

func (f *FakeAPI) handleEvents(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("searchQuery")

	f.mu.Lock()
	events := make([]models.Event, 0, len(f.events))
	for _, ev := range f.events {
		if matches(ev.Name, search) {
			events = append(events, ev)
		}
	}
	f.mu.Unlock()

	writePage(w, r, events, models.PageInfo{})
}

func (f *FakeAPI) handleEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad event id", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ev := range f.events {
		if ev.ID == id {
			writeJSON(w, http.StatusOK, ev)
			return
		}
	}
	http.Error(w, "event not found", http.StatusNotFound)
}

func (f *FakeAPI) handleEventTypes(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	types := slices.Clone(f.eventTypes)
	f.mu.Unlock()

	if types == nil {
		types = []models.EventType{}
	}
	writeJSON(w, http.StatusOK, types)
}

func (f *FakeAPI) handleGuests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("searchQuery")
	eventID, _ := strconv.ParseInt(q.Get("eventId"), 10, 64)
	categoryID, _ := strconv.ParseInt(q.Get("categoryId"), 10, 64)

	f.mu.Lock()
	guests := make([]models.Guest, 0, len(f.guests))
	people := 0
	for _, g := range f.guests {
		if eventID != 0 && (g.EventID == nil || *g.EventID != eventID) {
			continue
		}
		if categoryID != 0 && (g.CategoryID == nil || *g.CategoryID != categoryID) {
			continue
		}
		if !matches(g.Name, search) {
			continue
		}
		guests = append(guests, g)
		people += g.PeopleCount
	}
	f.mu.Unlock()

	writePage(w, r, guests, models.PageInfo{TotalPeopleCount: &people})
}

// Apply fn to the guest from path. Returns false if there is no such guest
func (f *FakeAPI) updateGuest(r *http.Request, fn func(g *models.Guest)) (models.Guest, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return models.Guest{}, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.guests {
		if f.guests[i].ID == id {
			fn(&f.guests[i])
			return f.guests[i], true
		}
	}
	return models.Guest{}, false
}

func (f *FakeAPI) handleConfirmPresence(w http.ResponseWriter, r *http.Request) {
	var in models.ConfirmPresenceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	g, ok := f.updateGuest(r, func(g *models.Guest) {
		g.PresenceConfirmed = true
		g.PeopleConfirmed = &in.PeopleConfirmed
		g.AdditionalComments = in.AdditionalComments
	})
	if !ok {
		http.Error(w, "guest not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (f *FakeAPI) handleArrival(arrived bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := f.updateGuest(r, func(g *models.Guest) {
			g.Arrived = arrived
		})
		if !ok {
			http.Error(w, "guest not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

func (f *FakeAPI) handleDashboard(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(r.PathValue("eventId"), 10, 64)
	if err != nil {
		http.Error(w, "bad event id", http.StatusBadRequest)
		return
	}

	var stats models.GuestsStats
	f.mu.Lock()
	for _, g := range f.guests {
		if g.EventID == nil || *g.EventID != eventID {
			continue
		}
		stats.Total++
		stats.PeopleTotal += g.PeopleCount
		switch {
		case g.PresenceConfirmed:
			stats.Confirmed++
			stats.PeopleConfirmed += g.PeopleCount
		case g.AbsenceDeclared:
			stats.Declined++
			stats.PeopleDeclined += g.PeopleCount
		default:
			stats.Pending++
			stats.PeoplePending += g.PeopleCount
		}
	}
	f.mu.Unlock()

	if stats.Total > 0 {
		stats.ConfirmationRate = float64(stats.Confirmed) / float64(stats.Total)
	}

	writeJSON(w, http.StatusOK, models.DashboardStats{
		Overview: models.OverviewStats{
			DaysRemaining:     30,
			OperationalStatus: "on_track",
			HealthScore:       100,
			LastUpdatedAt:     models.Time{Time: time.Now().UTC().Truncate(time.Second)},
		},
		AttentionItems: []models.AttentionItem{},
		Guests:         stats,
	})
}

func (f *FakeAPI) handleCategories(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("searchQuery")

	f.mu.Lock()
	categories := make([]models.BeverageCategory, 0, len(f.categories))
	for _, c := range f.categories {
		if matches(c.Name, search) {
			categories = append(categories, c)
		}
	}
	f.mu.Unlock()

	writePage(w, r, categories, models.PageInfo{})
}

func (f *FakeAPI) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.BeverageCategoryInput
	err := json.NewDecoder(r.Body).Decode(&in)
	if err == nil && strings.TrimSpace(in.Name) == "" {
		err = errors.New("name is required")
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.nextID++
	c := models.BeverageCategory{
		ID:   f.nextID,
		Name: in.Name,
		Slug: strings.ReplaceAll(strings.ToLower(in.Name), " ", "-"),
	}
	f.categories = append(f.categories, c)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, c)
}
