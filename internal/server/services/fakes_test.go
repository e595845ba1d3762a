package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dishdash/dishdash/internal/common"
	"github.com/dishdash/dishdash/internal/dbx"
	"github.com/dishdash/dishdash/internal/server/mailer"
	"github.com/dishdash/dishdash/internal/server/models"
	"github.com/dishdash/dishdash/internal/server/repositories/sessions"
	"github.com/dishdash/dishdash/internal/server/repositories/stats"
	"github.com/dishdash/dishdash/internal/server/repositories/users"
	"github.com/dishdash/dishdash/internal/server/repositories/verificationtokens"
)

// --- verification tokens ---

type fakeTokensRepo struct {
	mu   sync.Mutex
	rows map[string]models.VerificationToken

	createErr  error
	consumeErr error
}

func newFakeTokensRepo() *fakeTokensRepo {
	return &fakeTokensRepo{rows: map[string]models.VerificationToken{}}
}

func tokenKey(identifier, token string) string { return identifier + "|" + token }

func (f *fakeTokensRepo) Create(ctx context.Context, vt *models.VerificationToken) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[tokenKey(vt.Identifier, vt.Token)] = *vt
	return nil
}

func (f *fakeTokensRepo) Consume(ctx context.Context, identifier, token string) (*models.VerificationToken, error) {
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	k := tokenKey(identifier, token)
	vt, ok := f.rows[k]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.rows, k)
	return &vt, nil
}

func (f *fakeTokensRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, vt := range f.rows {
		if vt.Expired(now) {
			delete(f.rows, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeTokensRepo) all() []models.VerificationToken {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.VerificationToken, 0, len(f.rows))
	for _, vt := range f.rows {
		out = append(out, vt)
	}
	return out
}

// --- users ---

type fakeUsersRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	byID    map[string]*models.User
	seq     int

	ensureErr  error
	setRoleErr error
	getErr     error
	listErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) put(u models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byEmail[u.Email] = &u
	f.byID[u.ID] = &u
}

func (f *fakeUsersRepo) EnsureByEmail(ctx context.Context, email, name string) (*models.User, error) {
	if f.ensureErr != nil {
		return nil, f.ensureErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	f.seq++
	u := &models.User{ID: fmt.Sprintf("u-%d", f.seq), Email: email, Name: name}
	f.byEmail[email] = u
	f.byID[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) SetRoleIfUnset(ctx context.Context, id string, role models.Role) (bool, error) {
	if f.setRoleErr != nil {
		return false, f.setRoleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok || u.Role != "" {
		return false, nil
	}
	u.Role = role
	return true, nil
}

func (f *fakeUsersRepo) CreateWithRole(ctx context.Context, email, name string, role models.Role) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.seq++
	u := &models.User{ID: fmt.Sprintf("u-%d", f.seq), Email: email, Name: name, Role: role}
	f.byEmail[email] = u
	f.byID[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.byID))
	for i := 1; i <= f.seq; i++ {
		if u, ok := f.byID[fmt.Sprintf("u-%d", i)]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsersRepo) role(email string) models.Role {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byEmail[email]; ok {
		return u.Role
	}
	return ""
}

// --- sessions ---

type fakeSessionsRepo struct {
	mu   sync.Mutex
	rows map[string]models.Session
	seq  int

	createErr error
	findErr   error
	deleteErr error
	deleted   []string
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{rows: map[string]models.Session{}}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	s.ID = fmt.Sprintf("s-%d", f.seq)
	f.rows[s.SessionToken] = *s
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, sessionToken string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.rows[sessionToken]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, sessionToken string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, sessionToken)
	f.deleted = append(f.deleted, sessionToken)
	return nil
}

func (f *fakeSessionsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k, s := range f.rows {
		if s.Expired(now) {
			delete(f.rows, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionsRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// --- stats ---

type fakeStatsRepo struct {
	out *models.TableCounts
	err error
}

func (f *fakeStatsRepo) Counts(ctx context.Context) (*models.TableCounts, error) {
	return f.out, f.err
}

// --- manager ---

type fakeRepoManager struct {
	u  *fakeUsersRepo
	s  *fakeSessionsRepo
	vt *fakeTokensRepo
	st *fakeStatsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u:  newFakeUsersRepo(),
		s:  newFakeSessionsRepo(),
		vt: newFakeTokensRepo(),
		st: &fakeStatsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessions.Repository { return m.s }
func (m *fakeRepoManager) VerificationTokens(db dbx.DBTX) verificationtokens.Repository {
	return m.vt
}
func (m *fakeRepoManager) Stats(db dbx.DBTX) stats.Repository { return m.st }

// --- mail ---

type fakeSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, m mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeSender) last() mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}
