package mapping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"vendormatch/internal/catalog"
	"vendormatch/internal/logging"
)

// Manager enforces catalog lifecycle invariants: every business owns at least
// one keyword, creating a business mints a default keyword, and removing the
// last keyword removes the business. Expected rule violations (duplicates,
// missing rows) come back as ok=false; only storage failures surface as errors.
type Manager struct {
	store    *catalog.Store
	notifier *Notifier
	logger   *slog.Logger
}

// NewManager builds a lifecycle manager owning a fresh notifier registry.
func NewManager(store *catalog.Store, logger *slog.Logger) *Manager {
	return &Manager{
		store:    store,
		notifier: NewNotifier(),
		logger:   logging.NewComponentLogger(logger, "lifecycle"),
	}
}

// Subscribe registers a removal-event subscriber and returns its token.
func (m *Manager) Subscribe(sub Subscriber) string {
	return m.notifier.Subscribe(sub)
}

// Unsubscribe removes a previously registered subscriber.
func (m *Manager) Unsubscribe(token string) {
	m.notifier.Unsubscribe(token)
}

// AddBusiness creates a business and its implicit default keyword: a
// non-case-sensitive exact alias equal to the name. ok is false when the name
// is blank or already taken (case-sensitive comparison).
func (m *Manager) AddBusiness(ctx context.Context, name string) (int64, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, false, nil
	}

	business, err := m.store.CreateBusiness(ctx, name)
	if errors.Is(err, catalog.ErrBusinessExists) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("add business: %w", err)
	}

	m.logger.Info("business added", slog.String("business", name), slog.Int64("id", business.ID))
	return business.ID, true, nil
}

// AddKeyword attaches a keyword to an existing business. ok is false when the
// business does not exist or the keyword already exists for it (the comparison
// ignores case).
func (m *Manager) AddKeyword(ctx context.Context, businessName, text string, caseSensitive bool, kind catalog.MatchKind) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}

	business, err := m.store.BusinessByName(ctx, businessName)
	if err != nil {
		return false, fmt.Errorf("add keyword: %w", err)
	}
	if business == nil {
		return false, nil
	}

	if _, err := m.store.InsertKeyword(ctx, business.ID, text, caseSensitive, kind); err != nil {
		if errors.Is(err, catalog.ErrKeywordExists) {
			return false, nil
		}
		return false, fmt.Errorf("add keyword: %w", err)
	}

	m.logger.Info("keyword added",
		slog.String("business", businessName),
		slog.String("keyword", text),
		slog.Bool("case_sensitive", caseSensitive),
		slog.String("kind", string(kind)))
	return true, nil
}

// DeleteKeyword removes a keyword from a business. When it was the business's
// last keyword the business is removed in the same transaction. Both the
// keyword-removed and (if applicable) business-removed events fire only after
// the deletions commit, in that order.
func (m *Manager) DeleteKeyword(ctx context.Context, businessName, text string) (bool, error) {
	business, err := m.store.BusinessByName(ctx, businessName)
	if err != nil {
		return false, fmt.Errorf("delete keyword: %w", err)
	}
	if business == nil {
		return false, nil
	}

	keyword, err := m.store.KeywordByText(ctx, business.ID, text)
	if err != nil {
		return false, fmt.Errorf("delete keyword: %w", err)
	}
	if keyword == nil {
		return false, nil
	}

	businessDeleted, err := m.store.DeleteKeywordCascade(ctx, keyword.ID, business.ID)
	if err != nil {
		if errors.Is(err, catalog.ErrKeywordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete keyword: %w", err)
	}

	m.logger.Info("keyword removed",
		slog.String("business", businessName),
		slog.String("keyword", keyword.Text),
		slog.Bool("business_removed", businessDeleted))
	m.notifier.keywordRemoved(businessName, keyword.Text)
	if businessDeleted {
		m.notifier.businessRemoved(businessName)
	}
	return true, nil
}

// DeleteBusiness removes a business and, through the schema cascade, all of
// its keywords. ok is false when the business does not exist.
func (m *Manager) DeleteBusiness(ctx context.Context, name string) (bool, error) {
	business, err := m.store.BusinessByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("delete business: %w", err)
	}
	if business == nil {
		return false, nil
	}

	if err := m.store.DeleteBusiness(ctx, business.ID); err != nil {
		if errors.Is(err, catalog.ErrBusinessNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete business: %w", err)
	}

	m.logger.Info("business removed", slog.String("business", name))
	m.notifier.businessRemoved(name)
	return true, nil
}

// UpdateBusinessAndKeyword renames a business and rewrites one of its keywords
// as one atomic operation. When the business name is unchanged only the
// keyword is updated. ok is false when the old business or keyword is missing,
// or when the new name already belongs to a different business; in the failure
// case no partial change is left behind.
func (m *Manager) UpdateBusinessAndKeyword(ctx context.Context, oldBusinessName, newBusinessName, oldKeyword, newKeyword string, caseSensitive bool, kind catalog.MatchKind) (bool, error) {
	newBusinessName = strings.TrimSpace(newBusinessName)
	newKeyword = strings.TrimSpace(newKeyword)
	if newBusinessName == "" || newKeyword == "" {
		return false, nil
	}

	business, err := m.store.BusinessByName(ctx, oldBusinessName)
	if err != nil {
		return false, fmt.Errorf("update business and keyword: %w", err)
	}
	if business == nil {
		return false, nil
	}

	if newBusinessName != oldBusinessName {
		existing, err := m.store.BusinessByName(ctx, newBusinessName)
		if err != nil {
			return false, fmt.Errorf("update business and keyword: %w", err)
		}
		if existing != nil && existing.ID != business.ID {
			return false, nil
		}
	}

	keyword, err := m.store.KeywordByText(ctx, business.ID, oldKeyword)
	if err != nil {
		return false, fmt.Errorf("update business and keyword: %w", err)
	}
	if keyword == nil {
		return false, nil
	}

	err = m.store.UpdateBusinessAndKeyword(ctx, business.ID, newBusinessName, keyword.ID, newKeyword, caseSensitive, kind)
	if err != nil {
		if catalog.IsRuleViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("update business and keyword: %w", err)
	}

	m.logger.Info("business and keyword updated",
		slog.String("business", oldBusinessName),
		slog.String("new_business", newBusinessName),
		slog.String("keyword", oldKeyword),
		slog.String("new_keyword", newKeyword))
	return true, nil
}

// Businesses lists every business in the catalog.
func (m *Manager) Businesses(ctx context.Context) ([]*catalog.Business, error) {
	return m.store.Businesses(ctx)
}

// Keywords lists a business's keywords. A missing business yields an empty
// list, mirroring the other read helpers.
func (m *Manager) Keywords(ctx context.Context, businessName string) ([]*catalog.Keyword, error) {
	business, err := m.store.BusinessByName(ctx, businessName)
	if err != nil {
		return nil, fmt.Errorf("list keywords: %w", err)
	}
	if business == nil {
		return nil, nil
	}
	return m.store.KeywordsForBusiness(ctx, business.ID)
}

// AllKeywords lists every keyword in the catalog with business names attached.
func (m *Manager) AllKeywords(ctx context.Context) ([]*catalog.Keyword, error) {
	return m.store.Keywords(ctx)
}

// KeywordCount reports how many keywords a business owns; zero when the
// business does not exist.
func (m *Manager) KeywordCount(ctx context.Context, businessName string) (int64, error) {
	business, err := m.store.BusinessByName(ctx, businessName)
	if err != nil {
		return 0, fmt.Errorf("keyword count: %w", err)
	}
	if business == nil {
		return 0, nil
	}
	return m.store.KeywordCount(ctx, business.ID)
}

// IsLastKeyword reports whether text names the only keyword a business has
// left, meaning its deletion would cascade to the business.
func (m *Manager) IsLastKeyword(ctx context.Context, businessName, text string) (bool, error) {
	business, err := m.store.BusinessByName(ctx, businessName)
	if err != nil {
		return false, fmt.Errorf("is last keyword: %w", err)
	}
	if business == nil {
		return false, nil
	}
	keyword, err := m.store.KeywordByText(ctx, business.ID, text)
	if err != nil {
		return false, fmt.Errorf("is last keyword: %w", err)
	}
	if keyword == nil {
		return false, nil
	}
	count, err := m.store.KeywordCount(ctx, business.ID)
	if err != nil {
		return false, fmt.Errorf("is last keyword: %w", err)
	}
	return count == 1, nil
}
