package features

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	dbtypes "github.com/carlosmendieta/resumeforge-backend/pkg/db/types"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/logger"
	pkgredis "github.com/carlosmendieta/resumeforge-backend/pkg/redis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type featureRepository interface {
	List(ctx context.Context) ([]models.Feature, error)
	FindByName(ctx context.Context, name string) (*models.Feature, error)
	FindByNames(ctx context.Context, names []string) ([]models.Feature, error)
	Upsert(ctx context.Context, feature *models.Feature) error
}

type featureCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	FeatureKey(name string) string
	UsageKey(userID, feature, day string) string
}

// Actor identifies who a gate decision is being made for.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// Status is the gate's answer for one feature name. Remaining is nil when
// the feature carries no daily limit.
type Status struct {
	FeatureName string `json:"featureName"`
	IsEnabled   bool   `json:"isEnabled"`
	DailyLimit  int    `json:"dailyLimit"`
	Remaining   *int   `json:"remaining,omitempty"`
}

// Refusal converts a closed gate answer into the typed error a consuming
// call site should return. Nil when the status is enabled.
func (s Status) Refusal() error {
	if s.IsEnabled {
		return nil
	}
	// A set Remaining means the flag itself was open and only the day's
	// allowance ran out.
	if s.DailyLimit > 0 && s.Remaining != nil && *s.Remaining == 0 {
		return limitExhaustedError(s.FeatureName, s.DailyLimit)
	}
	return pkgerrors.New(pkgerrors.CodeFeatureDisabled, fmt.Sprintf("feature %q is not available", s.FeatureName)).
		WithDetails(map[string]any{"featureName": s.FeatureName})
}

// UpsertFeatureInput carries the admin mutation for one flag.
type UpsertFeatureInput struct {
	FeatureName  string   `json:"featureName" validate:"required"`
	IsEnabled    bool     `json:"isEnabled"`
	AllowedRoles []string `json:"allowedRoles"`
	DailyLimit   int      `json:"dailyLimit" validate:"gte=0"`
}

// Service is the feature gate. Check answers never carry errors: any lookup
// failure degrades to disabled so a broken flag store cannot open a gate.
type Service interface {
	List(ctx context.Context) ([]models.Feature, error)
	Check(ctx context.Context, actor Actor, name string) Status
	CheckBatch(ctx context.Context, actor Actor, names []string) map[string]Status
	Consume(ctx context.Context, actor Actor, name string) error
	Upsert(ctx context.Context, input UpsertFeatureInput) (*models.Feature, error)
}

type service struct {
	repo     featureRepository
	cache    featureCache
	cacheTTL time.Duration
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the gate. The cache may be nil; every check then goes to
// the database and daily limits are not enforced.
func NewService(repo featureRepository, cache featureCache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("feature repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL, logg: logg, now: time.Now}, nil
}

// cachedFlag is the serialized cache entry. Missing rows are cached too so
// repeated checks for unknown names do not hammer the database.
type cachedFlag struct {
	Missing      bool     `json:"missing,omitempty"`
	IsEnabled    bool     `json:"isEnabled"`
	AllowedRoles []string `json:"allowedRoles"`
	DailyLimit   int      `json:"dailyLimit"`
}

func (s *service) List(ctx context.Context) ([]models.Feature, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list features")
	}
	return rows, nil
}

func (s *service) Check(ctx context.Context, actor Actor, name string) Status {
	return s.CheckBatch(ctx, actor, []string{name})[name]
}

// CheckBatch resolves every name with at most one database round trip for
// the cache misses.
func (s *service) CheckBatch(ctx context.Context, actor Actor, names []string) map[string]Status {
	result := make(map[string]Status, len(names))
	flags := make(map[string]cachedFlag, len(names))

	var misses []string
	for _, name := range names {
		if flag, ok := s.cacheLookup(ctx, name); ok {
			flags[name] = flag
			continue
		}
		misses = append(misses, name)
	}

	if len(misses) > 0 {
		rows, err := s.repo.FindByNames(ctx, misses)
		if err != nil {
			s.logg.Error(s.logg.WithField(ctx, "features", misses), "feature lookup failed, gate closed", err)
			rows = nil
		}
		found := make(map[string]models.Feature, len(rows))
		for _, row := range rows {
			found[row.FeatureName] = row
		}
		for _, name := range misses {
			flag := cachedFlag{Missing: true}
			if row, ok := found[name]; ok {
				flag = cachedFlag{
					IsEnabled:    row.IsEnabled,
					AllowedRoles: row.AllowedRoles,
					DailyLimit:   row.DailyLimit,
				}
			}
			// Only cache what the database actually answered.
			if err == nil {
				s.cacheStore(ctx, name, flag)
			}
			flags[name] = flag
		}
	}

	for _, name := range names {
		result[name] = s.statusFor(ctx, actor, name, flags[name])
	}
	return result
}

// Consume spends one unit of the actor's daily allowance for the feature.
// Refuses with a feature_disabled error when the gate is closed and with a
// limit_exhausted error once the day's allowance is gone.
func (s *service) Consume(ctx context.Context, actor Actor, name string) error {
	status := s.Check(ctx, actor, name)
	if err := status.Refusal(); err != nil {
		return err
	}
	if status.DailyLimit <= 0 || s.cache == nil {
		return nil
	}

	key := s.cache.UsageKey(actor.UserID.String(), name, s.usageDay())
	count, err := s.cache.IncrWithTTL(ctx, key, s.untilNextUTCMidnight())
	if err != nil {
		// Fail closed: an unaccountable consumption is a refused one.
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "track feature usage")
	}
	if count > int64(status.DailyLimit) {
		return limitExhaustedError(name, status.DailyLimit)
	}
	return nil
}

func limitExhaustedError(name string, limit int) error {
	return pkgerrors.New(pkgerrors.CodeLimitExhausted, fmt.Sprintf("daily limit for %q reached", name)).
		WithDetails(map[string]any{"featureName": name, "dailyLimit": limit})
}

func (s *service) Upsert(ctx context.Context, input UpsertFeatureInput) (*models.Feature, error) {
	roles := input.AllowedRoles
	for _, role := range roles {
		if !enums.UserRole(role).IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown role %q", role))
		}
	}

	row := &models.Feature{
		ID:           uuid.New(),
		FeatureName:  input.FeatureName,
		IsEnabled:    input.IsEnabled,
		AllowedRoles: dbtypes.StringArray(roles),
		DailyLimit:   input.DailyLimit,
	}
	if row.AllowedRoles == nil {
		row.AllowedRoles = dbtypes.StringArray{}
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert feature")
	}
	s.cacheBust(ctx, input.FeatureName)

	stored, err := s.repo.FindByName(ctx, input.FeatureName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("feature %q not found after upsert", input.FeatureName))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload feature")
	}
	return stored, nil
}

func (s *service) statusFor(ctx context.Context, actor Actor, name string, flag cachedFlag) Status {
	status := Status{FeatureName: name, DailyLimit: flag.DailyLimit}
	if flag.Missing || !flag.IsEnabled {
		return status
	}
	if len(flag.AllowedRoles) > 0 && !containsRole(flag.AllowedRoles, actor.Role) {
		return status
	}

	status.IsEnabled = true
	if flag.DailyLimit > 0 {
		remaining := flag.DailyLimit - s.usedToday(ctx, actor, name)
		if remaining < 0 {
			remaining = 0
		}
		status.Remaining = &remaining
		if remaining == 0 {
			status.IsEnabled = false
		}
	}
	return status
}

func (s *service) usedToday(ctx context.Context, actor Actor, name string) int {
	if s.cache == nil {
		return 0
	}
	raw, err := s.cache.Get(ctx, s.cache.UsageKey(actor.UserID.String(), name, s.usageDay()))
	if err != nil {
		if !pkgredis.IsNil(err) {
			s.logg.Warn(s.logg.WithField(ctx, "feature", name), "usage counter unavailable")
		}
		return 0
	}
	used, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return used
}

func (s *service) cacheLookup(ctx context.Context, name string) (cachedFlag, bool) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return cachedFlag{}, false
	}
	raw, err := s.cache.Get(ctx, s.cache.FeatureKey(name))
	if err != nil {
		if !pkgredis.IsNil(err) {
			s.logg.Warn(s.logg.WithField(ctx, "feature", name), "feature cache read failed")
		}
		return cachedFlag{}, false
	}
	var flag cachedFlag
	if err := json.Unmarshal([]byte(raw), &flag); err != nil {
		return cachedFlag{}, false
	}
	return flag, true
}

func (s *service) cacheStore(ctx context.Context, name string, flag cachedFlag) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(flag)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.FeatureKey(name), string(raw), s.cacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "feature", name), "feature cache write failed")
	}
}

func (s *service) cacheBust(ctx context.Context, name string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.FeatureKey(name)); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "feature", name), "feature cache bust failed")
	}
}

func (s *service) usageDay() string {
	return s.now().UTC().Format("2006-01-02")
}

func (s *service) untilNextUTCMidnight() time.Duration {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return midnight.Sub(now)
}

func containsRole(roles []string, role enums.UserRole) bool {
	for _, candidate := range roles {
		if candidate == string(role) {
			return true
		}
	}
	return false
}
