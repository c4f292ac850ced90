package repo

import (
	"context"
	"strings"
	"time"

	"monitor-hub/backend/app/models"

	"gorm.io/gorm"
)

// ActivityFilter narrows activity listings. Empty fields are ignored.
type ActivityFilter struct {
	User     string
	Hostname string
	App      string
	Title    string
	Search   string
	From     *time.Time
	To       *time.Time
	Limit    int
}

var (
	webSearchColumns = []string{"title", "url"}
	fsSearchColumns  = []string{"user_name", "hostname", "event", "path"}
	appSearchColumns = []string{"user_name", "hostname", "app", "title"}
)

type ActivityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) *ActivityRepository { return &ActivityRepository{db: db} }

func (r *ActivityRepository) CreateApp(ctx context.Context, a *models.AppActivity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ActivityRepository) CreateWeb(ctx context.Context, a *models.WebActivity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ActivityRepository) CreateFs(ctx context.Context, a *models.FsActivity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ActivityRepository) ListApp(ctx context.Context, f ActivityFilter) ([]models.AppActivity, error) {
	q := r.db.WithContext(ctx).Model(&models.AppActivity{})
	if f.App != "" {
		q = q.Where("app = ?", f.App)
	}
	if f.Title != "" {
		q = whereContains(q, []string{"title"}, f.Title)
	}
	var out []models.AppActivity
	err := applyFilter(q, f, appSearchColumns).Find(&out).Error
	return out, err
}

func (r *ActivityRepository) ListWeb(ctx context.Context, f ActivityFilter) ([]models.WebActivity, error) {
	var out []models.WebActivity
	err := applyFilter(r.db.WithContext(ctx).Model(&models.WebActivity{}), f, webSearchColumns).Find(&out).Error
	return out, err
}

func (r *ActivityRepository) ListFs(ctx context.Context, f ActivityFilter) ([]models.FsActivity, error) {
	var out []models.FsActivity
	err := applyFilter(r.db.WithContext(ctx).Model(&models.FsActivity{}), f, fsSearchColumns).Find(&out).Error
	return out, err
}

// applyFilter adds the shared user/hostname/time/search conditions and the
// most-recent-first ordering.
func applyFilter(q *gorm.DB, f ActivityFilter, searchColumns []string) *gorm.DB {
	if f.User != "" {
		q = q.Where("user_name = ?", f.User)
	}
	if f.Hostname != "" {
		q = q.Where("hostname = ?", f.Hostname)
	}
	if f.From != nil {
		q = q.Where("ts >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("ts <= ?", f.To.UTC())
	}
	if f.Search != "" {
		q = whereContains(q, searchColumns, f.Search)
	}
	q = q.Order("ts DESC").Order("id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	return q
}

// whereContains matches rows where any of columns contains term, ignoring case.
func whereContains(q *gorm.DB, columns []string, term string) *gorm.DB {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, "LOWER("+col+") LIKE ? ESCAPE '!'")
		args = append(args, pattern)
	}
	return q.Where("("+strings.Join(parts, " OR ")+")", args...)
}

// escapeLike escapes LIKE wildcards using '!', accepted by mysql, postgres and sqlite.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
