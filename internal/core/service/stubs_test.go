package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/montech/articles-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory store shared by the stub repositories
// ---------------------------------------------------------------------------

type memStore struct {
	users    map[string]*domain.User
	roles    map[string]*domain.Role
	articles map[string]*domain.Article
	seq      int

	// failure injection
	createArticleErr error
	addArticleErr    error
	removeArticleErr error
	deleteArticleErr error

	// beforeArticleWrite runs once before the next article update, simulating
	// a concurrent writer between the service's read and its write.
	beforeArticleWrite func()
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*domain.User),
		roles:    make(map[string]*domain.Role),
		articles: make(map[string]*domain.Article),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) runBeforeArticleWrite() {
	if hook := m.beforeArticleWrite; hook != nil {
		m.beforeArticleWrite = nil
		hook()
	}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.ArticleIDs != nil {
		c.ArticleIDs = make([]string, len(u.ArticleIDs))
		copy(c.ArticleIDs, u.ArticleIDs)
	}
	return &c
}

func cloneArticle(a *domain.Article) *domain.Article {
	c := *a
	return &c
}

type memSnapshot struct {
	users    map[string]*domain.User
	roles    map[string]*domain.Role
	articles map[string]*domain.Article
}

func (m *memStore) snapshot() memSnapshot {
	s := memSnapshot{
		users:    make(map[string]*domain.User, len(m.users)),
		roles:    make(map[string]*domain.Role, len(m.roles)),
		articles: make(map[string]*domain.Article, len(m.articles)),
	}
	for k, v := range m.users {
		s.users[k] = cloneUser(v)
	}
	for k, v := range m.roles {
		r := *v
		s.roles[k] = &r
	}
	for k, v := range m.articles {
		s.articles[k] = cloneArticle(v)
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	m.users, m.roles, m.articles = s.users, s.roles, s.articles
}

// memTx mirrors a store transaction: on error every write made by fn is undone.
type memTx struct {
	store *memStore
	calls int
}

func (t *memTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct{ store *memStore }

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneUser(user)
	c.ID = r.store.nextID("user")
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	r.store.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) AddArticle(_ context.Context, userID, articleID string) error {
	if r.store.addArticleErr != nil {
		return r.store.addArticleErr
	}
	u, ok := r.store.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ArticleIDs = append(u.ArticleIDs, articleID)
	return nil
}

func (r *stubUserRepo) RemoveArticle(_ context.Context, userID, articleID string) error {
	if r.store.removeArticleErr != nil {
		return r.store.removeArticleErr
	}
	u, ok := r.store.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.ArticleIDs[:0]
	for _, id := range u.ArticleIDs {
		if id != articleID {
			kept = append(kept, id)
		}
	}
	u.ArticleIDs = kept
	return nil
}

type stubRoleRepo struct{ store *memStore }

func (r *stubRoleRepo) FindOrCreate(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.store.roles {
		if role.Name == name {
			c := *role
			return &c, nil
		}
	}
	role := &domain.Role{ID: r.store.nextID("role"), Name: name}
	r.store.roles[role.ID] = role
	c := *role
	return &c, nil
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.store.roles[id]
	if !ok {
		return nil, fmt.Errorf("role %s not found", id)
	}
	c := *role
	return &c, nil
}

type stubArticleRepo struct{ store *memStore }

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) (*domain.Article, error) {
	if r.store.createArticleErr != nil {
		return nil, r.store.createArticleErr
	}
	c := cloneArticle(a)
	c.ID = r.store.nextID("article")
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	r.store.articles[c.ID] = c
	return cloneArticle(c), nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id string) (*domain.Article, error) {
	a, ok := r.store.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

func (r *stubArticleRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Article, error) {
	out := make([]*domain.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.store.articles[id]; ok {
			out = append(out, cloneArticle(a))
		}
	}
	return out, nil
}

func (r *stubArticleRepo) List(_ context.Context) ([]*domain.Article, error) {
	out := make([]*domain.Article, 0, len(r.store.articles))
	for _, a := range r.store.articles {
		out = append(out, cloneArticle(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubArticleRepo) UpdateContent(_ context.Context, id, title, content string) (*domain.Article, error) {
	r.store.runBeforeArticleWrite()
	stored, ok := r.store.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	stored.Title = title
	stored.Content = content
	stored.UpdatedAt = time.Now().UTC()
	return cloneArticle(stored), nil
}

func (r *stubArticleRepo) UpdateStatus(_ context.Context, id string, status domain.ArticleStatus) (*domain.Article, error) {
	r.store.runBeforeArticleWrite()
	stored, ok := r.store.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	stored.Status = status
	stored.UpdatedAt = time.Now().UTC()
	return cloneArticle(stored), nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id string) error {
	if r.store.deleteArticleErr != nil {
		return r.store.deleteArticleErr
	}
	if _, ok := r.store.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(r.store.articles, id)
	return nil
}

type stubRevoker struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

var discardLogger = zerolog.Nop()

type fixture struct {
	store    *memStore
	tx       *memTx
	creds    *CredentialService
	revoker  *stubRevoker
	users    *UserService
	articles *ArticleService
}

func newFixture() *fixture {
	store := newMemStore()
	tx := &memTx{store: store}
	// MinCost keeps the suite fast; production uses DefaultBcryptCost.
	creds := NewCredentialService(testSecret, time.Hour, 4)
	revoker := newStubRevoker()

	userRepo := &stubUserRepo{store: store}
	roleRepo := &stubRoleRepo{store: store}
	articleRepo := &stubArticleRepo{store: store}

	return &fixture{
		store:    store,
		tx:       tx,
		creds:    creds,
		revoker:  revoker,
		users:    NewUserService(userRepo, roleRepo, tx, creds, revoker, discardLogger),
		articles: NewArticleService(articleRepo, userRepo, tx, discardLogger),
	}
}
