package similarity_test

import (
	"testing"

	"vendormatch/internal/similarity"
)

func TestDiceOracleFindsCloseCandidate(t *testing.T) {
	oracle := similarity.NewDiceOracle(0.6)

	match, err := oracle.BestMatch("globex incorporated", []string{"initech", "globex inc", "acme"})
	if err != nil {
		t.Fatalf("BestMatch failed: %v", err)
	}
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Candidate != "globex inc" {
		t.Fatalf("unexpected candidate: %q", match.Candidate)
	}
	if match.Score < 0.6 || match.Score > 1 {
		t.Fatalf("score out of expected range: %v", match.Score)
	}
}

func TestDiceOracleIdenticalStringsScoreOne(t *testing.T) {
	oracle := similarity.NewDiceOracle(0.8)

	match, err := oracle.BestMatch("acme corp", []string{"acme corp"})
	if err != nil {
		t.Fatalf("BestMatch failed: %v", err)
	}
	if match == nil || match.Score != 1.0 {
		t.Fatalf("expected perfect score, got %#v", match)
	}
}

func TestDiceOracleRespectsThreshold(t *testing.T) {
	oracle := similarity.NewDiceOracle(0.9)

	match, err := oracle.BestMatch("completely different", []string{"acme corp", "globex inc"})
	if err != nil {
		t.Fatalf("BestMatch failed: %v", err)
	}
	if match != nil {
		t.Fatalf("expected no match below threshold, got %#v", match)
	}
}

func TestDiceOracleSkipsBlankInput(t *testing.T) {
	oracle := similarity.NewDiceOracle(0.5)

	if match, err := oracle.BestMatch("", []string{"acme"}); err != nil || match != nil {
		t.Fatalf("expected nil for blank query, got %#v err=%v", match, err)
	}
	if match, err := oracle.BestMatch("acme", nil); err != nil || match != nil {
		t.Fatalf("expected nil for empty candidates, got %#v err=%v", match, err)
	}
	if match, err := oracle.BestMatch("acme", []string{"  ", "acme"}); err != nil || match == nil || match.Candidate != "acme" {
		t.Fatalf("expected blank candidates skipped, got %#v err=%v", match, err)
	}
}
