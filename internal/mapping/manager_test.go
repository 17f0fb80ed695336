package mapping_test

import (
	"context"
	"testing"

	"vendormatch/internal/catalog"
	"vendormatch/internal/mapping"
	"vendormatch/internal/testsupport"
)

type recordingSubscriber struct {
	keywordEvents  []string
	businessEvents []string
}

func (r *recordingSubscriber) KeywordRemoved(businessName, keywordText string) {
	r.keywordEvents = append(r.keywordEvents, businessName+"/"+keywordText)
}

func (r *recordingSubscriber) BusinessRemoved(businessName string) {
	r.businessEvents = append(r.businessEvents, businessName)
}

func newManager(t *testing.T) (*mapping.Manager, *catalog.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	return mapping.NewManager(store, nil), store
}

func TestAddBusinessCreatesDefaultKeyword(t *testing.T) {
	manager, store := newManager(t)
	ctx := context.Background()

	id, ok, err := manager.AddBusiness(ctx, "Acme Corp")
	if err != nil {
		t.Fatalf("AddBusiness failed: %v", err)
	}
	if !ok || id == 0 {
		t.Fatalf("expected successful creation, ok=%v id=%d", ok, id)
	}

	keywords, err := store.KeywordsForBusiness(ctx, id)
	if err != nil {
		t.Fatalf("KeywordsForBusiness failed: %v", err)
	}
	if len(keywords) != 1 || keywords[0].Text != "Acme Corp" {
		t.Fatalf("expected implicit default keyword, got %#v", keywords)
	}
	if keywords[0].CaseSensitive || keywords[0].Kind != catalog.MatchKindExact {
		t.Fatalf("default keyword should be exact and case-insensitive: %#v", keywords[0])
	}
}

func TestAddBusinessDuplicateFailsWithoutSideEffects(t *testing.T) {
	manager, store := newManager(t)
	ctx := context.Background()

	if _, ok, err := manager.AddBusiness(ctx, "Dup"); err != nil || !ok {
		t.Fatalf("first AddBusiness: ok=%v err=%v", ok, err)
	}
	if _, ok, err := manager.AddBusiness(ctx, "Dup"); err != nil || ok {
		t.Fatalf("second AddBusiness should fail cleanly: ok=%v err=%v", ok, err)
	}

	businesses, err := store.Businesses(ctx)
	if err != nil {
		t.Fatalf("Businesses failed: %v", err)
	}
	if len(businesses) != 1 {
		t.Fatalf("expected one business, got %d", len(businesses))
	}
	keywords, err := store.Keywords(ctx)
	if err != nil {
		t.Fatalf("Keywords failed: %v", err)
	}
	if len(keywords) != 1 {
		t.Fatalf("expected one implicit keyword, got %d", len(keywords))
	}
}

func TestAddBusinessRejectsBlankName(t *testing.T) {
	manager, _ := newManager(t)

	if _, ok, err := manager.AddBusiness(context.Background(), "   "); err != nil || ok {
		t.Fatalf("expected blank name rejection: ok=%v err=%v", ok, err)
	}
}

func TestAddKeywordRules(t *testing.T) {
	manager, _ := newManager(t)
	ctx := context.Background()

	if _, ok, err := manager.AddBusiness(ctx, "Acme Corp"); err != nil || !ok {
		t.Fatalf("AddBusiness: ok=%v err=%v", ok, err)
	}

	ok, err := manager.AddKeyword(ctx, "Acme Corp", "acme", false, catalog.MatchKindExact)
	if err != nil || !ok {
		t.Fatalf("AddKeyword: ok=%v err=%v", ok, err)
	}

	// Duplicate differing only in case is rejected.
	ok, err = manager.AddKeyword(ctx, "Acme Corp", "ACME", true, catalog.MatchKindFuzzy)
	if err != nil || ok {
		t.Fatalf("duplicate keyword should fail cleanly: ok=%v err=%v", ok, err)
	}

	// Unknown business is an expected failure, not an error.
	ok, err = manager.AddKeyword(ctx, "Nope Inc", "nope", false, catalog.MatchKindExact)
	if err != nil || ok {
		t.Fatalf("unknown business should fail cleanly: ok=%v err=%v", ok, err)
	}
}

func TestDeleteKeywordCascadeEmitsBothEvents(t *testing.T) {
	manager, store := newManager(t)
	ctx := context.Background()

	if _, ok, err := manager.AddBusiness(ctx, "Test Business 2"); err != nil || !ok {
		t.Fatalf("AddBusiness: ok=%v err=%v", ok, err)
	}
	if ok, err := manager.AddKeyword(ctx, "Test Business 2", "test3", false, catalog.MatchKindExact); err != nil || !ok {
		t.Fatalf("AddKeyword: ok=%v err=%v", ok, err)
	}
	if ok, err := manager.DeleteKeyword(ctx, "Test Business 2", "Test Business 2"); err != nil || !ok {
		t.Fatalf("DeleteKeyword: ok=%v err=%v", ok, err)
	}

	sub := &recordingSubscriber{}
	manager.Subscribe(sub)

	ok, err := manager.DeleteKeyword(ctx, "Test Business 2", "test3")
	if err != nil || !ok {
		t.Fatalf("DeleteKeyword: ok=%v err=%v", ok, err)
	}

	if len(sub.keywordEvents) != 1 || sub.keywordEvents[0] != "Test Business 2/test3" {
		t.Fatalf("unexpected keyword events: %v", sub.keywordEvents)
	}
	if len(sub.businessEvents) != 1 || sub.businessEvents[0] != "Test Business 2" {
		t.Fatalf("unexpected business events: %v", sub.businessEvents)
	}

	business, err := store.BusinessByName(ctx, "Test Business 2")
	if err != nil {
		t.Fatalf("BusinessByName failed: %v", err)
	}
	if business != nil {
		t.Fatalf("business should be removed with its last keyword: %#v", business)
	}
}

func TestDeleteKeywordLeavesBusinessWhenOthersRemain(t *testing.T) {
	manager, store := newManager(t)
	ctx := context.Background()

	if _, ok, err := manager.AddBusiness(ctx, "Acme Corp"); err != nil || !ok {
		t.Fatalf("AddBusiness: ok=%v err=%v", ok, err)
	}
	if ok, err := manager.AddKeyword(ctx, "Acme Corp", "acme", false, catalog.MatchKindExact); err != nil || !ok {
		t.Fatalf("AddKeyword: ok=%v err=%v", ok, err)
	}

	sub := &recordingSubscriber{}
	manager.Subscribe(sub)

	ok, err := manager.DeleteKeyword(ctx, "Acme Corp", "acme")
	if err != nil || !ok {
		t.Fatalf("DeleteKeyword: ok=%v err=%v", ok, err)
	}
	if len(sub.keywordEvents) != 1 {
		t.Fatalf("expected one keyword event, got %v", sub.keywordEvents)
	}
	if len(sub.businessEvents) != 0 {
		t.Fatalf("business event should not fire, got %v", sub.businessEvents)
	}

	business, err := store.BusinessByName(ctx, "Acme Corp")
	if err != nil {
		t.Fatalf("BusinessByName failed: %v", err)
	}
	if business == nil {
		t.Fatal("business should survive while keywords remain")
	}
}

func TestDeleteKeywordMissingTargets(t *testing.T) {
	manager, _ := newManager(t)
	ctx := context.Background()

	if ok, err := manager.DeleteKeyword(ctx, "Nope Inc", "x"); err != nil || ok {
		t.Fatalf("unknown business should fail cleanly: ok=%v err=%v", ok, err)
	}

	if _, ok, err := manager.AddBusiness(ctx, "Acme Corp"); err != nil || !ok {
		t.Fatalf("AddBusiness: ok=%v err=%v", ok, err)
	}
	if ok, err := manager.DeleteKeyword(ctx, "Acme Corp", "missing"); err != nil || ok {
		t.Fatalf("unknown keyword should fail cleanly: ok=%v err=%v", ok, err)
	}
}

func TestDeleteBusinessEmitsEvent(t *testing.T) {
	manager, _ := newManager(t)
	ctx := context.Background()

	if _, ok, err := manager.AddBusiness(ctx, "Globex"); err != nil || !ok {
		t.Fatalf("AddBusiness: ok=%v err=%v", ok, err)
	}

	sub := &recordingSubscriber{}
	token := manager.Subscribe(sub)

	if ok, err := manager.DeleteBusiness(ctx, "Globex"); err != nil || !ok {
		t.Fatalf("DeleteBusiness: ok=%v err=%v", ok, err)
	}
	if len(sub.businessEvents) != 1 || sub.businessEvents[0] != "Globex" {
		t.Fatalf("unexpected business events: %v", sub.businessEvents)
	}

	// After unsubscribing no further events arrive.
	manager.Unsubscribe(token)
	if _, ok, err := manager.AddBusiness(ctx, "Globex"); err != nil || !ok {
		t.Fatalf("AddBusiness: ok=%v err=%v", ok, err)
	}
	if ok, err := manager.DeleteBusiness(ctx, "Globex"); err != nil || !ok {
		t.Fatalf("DeleteBusiness: ok=%v err=%v", ok, err)
	}
	if len(sub.businessEvents) != 1 {
		t.Fatalf("unsubscribed subscriber received events: %v", sub.businessEvents)
	}
}

func TestUpdateBusinessAndKeyword(t *testing.T) {
	manager, _ := newManager(t)
	ctx := context.Background()

	if _, ok, err := manager.AddBusiness(ctx, "Acme Corp"); err != nil || !ok {
		t.Fatalf("AddBusiness: ok=%v err=%v", ok, err)
	}
	if _, ok, err := manager.AddBusiness(ctx, "Globex"); err != nil || !ok {
		t.Fatalf("AddBusiness: ok=%v err=%v", ok, err)
	}

	// Renaming onto another existing business fails with no partial change.
	ok, err := manager.UpdateBusinessAndKeyword(ctx, "Acme Corp", "Globex", "Acme Corp", "acme", false, catalog.MatchKindExact)
	if err != nil || ok {
		t.Fatalf("collision rename should fail cleanly: ok=%v err=%v", ok, err)
	}
	keywords, err := manager.Keywords(ctx, "Acme Corp")
	if err != nil {
		t.Fatalf("Keywords failed: %v", err)
	}
	if len(keywords) != 1 || keywords[0].Text != "Acme Corp" {
		t.Fatalf("expected unchanged keyword after failed rename, got %#v", keywords)
	}

	// Keyword-only update when the name is unchanged.
	ok, err = manager.UpdateBusinessAndKeyword(ctx, "Acme Corp", "Acme Corp", "Acme Corp", "acme", true, catalog.MatchKindFuzzy)
	if err != nil || !ok {
		t.Fatalf("keyword update: ok=%v err=%v", ok, err)
	}
	keywords, err = manager.Keywords(ctx, "Acme Corp")
	if err != nil {
		t.Fatalf("Keywords failed: %v", err)
	}
	if keywords[0].Text != "acme" || !keywords[0].CaseSensitive || keywords[0].Kind != catalog.MatchKindFuzzy {
		t.Fatalf("unexpected keyword after update: %#v", keywords[0])
	}

	// Rename business and keyword together.
	ok, err = manager.UpdateBusinessAndKeyword(ctx, "Acme Corp", "Acme Corporation", "acme", "acme corp", false, catalog.MatchKindExact)
	if err != nil || !ok {
		t.Fatalf("full rename: ok=%v err=%v", ok, err)
	}
	keywords, err = manager.Keywords(ctx, "Acme Corporation")
	if err != nil {
		t.Fatalf("Keywords failed: %v", err)
	}
	if len(keywords) != 1 || keywords[0].Text != "acme corp" {
		t.Fatalf("unexpected keywords after rename: %#v", keywords)
	}

	// Missing old business is an expected failure.
	ok, err = manager.UpdateBusinessAndKeyword(ctx, "Acme Corp", "Whatever", "acme corp", "x", false, catalog.MatchKindExact)
	if err != nil || ok {
		t.Fatalf("missing business should fail cleanly: ok=%v err=%v", ok, err)
	}
}

func TestReadHelpersReflectCurrentState(t *testing.T) {
	manager, _ := newManager(t)
	ctx := context.Background()

	if _, ok, err := manager.AddBusiness(ctx, "Acme Corp"); err != nil || !ok {
		t.Fatalf("AddBusiness: ok=%v err=%v", ok, err)
	}

	count, err := manager.KeywordCount(ctx, "Acme Corp")
	if err != nil || count != 1 {
		t.Fatalf("KeywordCount = %d, err=%v", count, err)
	}

	last, err := manager.IsLastKeyword(ctx, "Acme Corp", "acme corp")
	if err != nil || !last {
		t.Fatalf("IsLastKeyword = %v, err=%v", last, err)
	}

	if ok, err := manager.AddKeyword(ctx, "Acme Corp", "acme", false, catalog.MatchKindExact); err != nil || !ok {
		t.Fatalf("AddKeyword: ok=%v err=%v", ok, err)
	}

	last, err = manager.IsLastKeyword(ctx, "Acme Corp", "acme")
	if err != nil || last {
		t.Fatalf("IsLastKeyword after second keyword = %v, err=%v", last, err)
	}

	count, err = manager.KeywordCount(ctx, "Acme Corp")
	if err != nil || count != 2 {
		t.Fatalf("KeywordCount = %d, err=%v", count, err)
	}

	// Missing business yields zero values.
	count, err = manager.KeywordCount(ctx, "Nope Inc")
	if err != nil || count != 0 {
		t.Fatalf("KeywordCount for missing business = %d, err=%v", count, err)
	}
}
