package leaderboard_test

import (
	"context"
	"testing"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/leaderboard"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/testutil/memstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newService() *leaderboard.Service {
	return leaderboard.New(memstore.NewPlayerScores(), memstore.NewDungeonScores(), zap.NewNop())
}

func seedPlayer(t *testing.T, svc *leaderboard.Service, username string, score int) primitive.ObjectID {
	t.Helper()
	id := primitive.NewObjectID()
	_, err := svc.UpsertPlayer(context.Background(), id, leaderboard.PlayerUpdate{
		Username:   username,
		TotalScore: score,
	})
	if err != nil {
		t.Fatalf("UpsertPlayer(%q) failed: %v", username, err)
	}
	return id
}

func TestUpsertPlayer(t *testing.T) {
	svc := newService()
	id := primitive.NewObjectID()

	row, err := svc.UpsertPlayer(context.Background(), id, leaderboard.PlayerUpdate{
		Username:   "delver",
		TotalScore: 100,
	})
	if err != nil {
		t.Fatalf("UpsertPlayer failed: %v", err)
	}
	if row.TotalScore != 100 {
		t.Errorf("TotalScore: got %d, want 100", row.TotalScore)
	}
	if row.LastUpdated.IsZero() {
		t.Error("expected LastUpdated to be stamped")
	}

	// A second upsert overwrites the row wholesale; lower values are not
	// merged, they replace.
	row, err = svc.UpsertPlayer(context.Background(), id, leaderboard.PlayerUpdate{
		Username:   "delver",
		TotalScore: 40,
	})
	if err != nil {
		t.Fatalf("second UpsertPlayer failed: %v", err)
	}
	if row.TotalScore != 40 {
		t.Errorf("TotalScore: got %d, want 40", row.TotalScore)
	}

	got, err := svc.PlayerScore(context.Background(), id)
	if err != nil {
		t.Fatalf("PlayerScore failed: %v", err)
	}
	if got.TotalScore != 40 {
		t.Errorf("stored TotalScore: got %d, want 40", got.TotalScore)
	}
}

func TestPlayerRank(t *testing.T) {
	svc := newService()
	first := seedPlayer(t, svc, "first", 300)
	second := seedPlayer(t, svc, "second", 200)
	third := seedPlayer(t, svc, "third", 100)

	for i, id := range []primitive.ObjectID{first, second, third} {
		rank, found, err := svc.PlayerRank(context.Background(), id)
		if err != nil {
			t.Fatalf("PlayerRank failed: %v", err)
		}
		if !found {
			t.Fatal("expected a rank")
		}
		if want := int64(i + 1); rank != want {
			t.Errorf("rank: got %d, want %d", rank, want)
		}
	}
}

func TestPlayerRank_TiesShareRank(t *testing.T) {
	svc := newService()
	seedPlayer(t, svc, "first", 300)
	a := seedPlayer(t, svc, "tied-a", 200)
	b := seedPlayer(t, svc, "tied-b", 200)

	for _, id := range []primitive.ObjectID{a, b} {
		rank, found, err := svc.PlayerRank(context.Background(), id)
		if err != nil || !found {
			t.Fatalf("PlayerRank: got (%v, %v)", found, err)
		}
		if rank != 2 {
			t.Errorf("tied rank: got %d, want 2", rank)
		}
	}
}

func TestPlayerRank_NoRow(t *testing.T) {
	svc := newService()
	seedPlayer(t, svc, "first", 300)

	rank, found, err := svc.PlayerRank(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("PlayerRank returned error: %v", err)
	}
	if found || rank != 0 {
		t.Errorf("got (%d, %v), want (0, false)", rank, found)
	}
}

func TestTopPlayers(t *testing.T) {
	svc := newService()
	seedPlayer(t, svc, "bronze", 100)
	seedPlayer(t, svc, "gold", 300)
	seedPlayer(t, svc, "silver", 200)

	rows, err := svc.TopPlayers(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopPlayers failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Username != "gold" || rows[1].Username != "silver" {
		t.Errorf("order: got %q, %q", rows[0].Username, rows[1].Username)
	}
}

func TestTopCreators(t *testing.T) {
	svc := newService()
	prolific := primitive.NewObjectID()
	if _, err := svc.UpsertPlayer(context.Background(), prolific, leaderboard.PlayerUpdate{
		Username:        "prolific",
		DungeonsCreated: 12,
	}); err != nil {
		t.Fatal(err)
	}
	casual := primitive.NewObjectID()
	if _, err := svc.UpsertPlayer(context.Background(), casual, leaderboard.PlayerUpdate{
		Username:        "casual",
		DungeonsCreated: 2,
		TotalScore:      9000,
	}); err != nil {
		t.Fatal(err)
	}

	rows, err := svc.TopCreators(context.Background(), 10)
	if err != nil {
		t.Fatalf("TopCreators failed: %v", err)
	}
	if len(rows) != 2 || rows[0].Username != "prolific" {
		t.Errorf("creator order ignores total score; got %d rows, first %q", len(rows), rows[0].Username)
	}
}

func TestDungeonRankAndListings(t *testing.T) {
	svc := newService()
	seed := func(name string, rating float64, plays int) primitive.ObjectID {
		id := primitive.NewObjectID()
		_, err := svc.UpsertDungeon(context.Background(), id, leaderboard.DungeonUpdate{
			DungeonName:   name,
			AverageRating: rating,
			PlayCount:     plays,
		})
		if err != nil {
			t.Fatalf("UpsertDungeon(%q) failed: %v", name, err)
		}
		return id
	}
	best := seed("best", 4.8, 10)
	mid := seed("mid", 3.5, 500)
	seed("worst", 2.0, 3)

	rank, found, err := svc.DungeonRank(context.Background(), mid)
	if err != nil || !found {
		t.Fatalf("DungeonRank: got (%v, %v)", found, err)
	}
	if rank != 2 {
		t.Errorf("rank: got %d, want 2", rank)
	}

	top, err := svc.TopDungeons(context.Background(), 1)
	if err != nil {
		t.Fatalf("TopDungeons failed: %v", err)
	}
	if len(top) != 1 || top[0].DungeonID != best {
		t.Error("top by rating should lead with the best-rated dungeon")
	}

	played, err := svc.MostPlayed(context.Background(), 1)
	if err != nil {
		t.Fatalf("MostPlayed failed: %v", err)
	}
	if len(played) != 1 || played[0].DungeonID != mid {
		t.Error("most played should lead with the highest play count")
	}
}
