package leaderboard_test

import (
	"context"
	"net/http"
	"testing"

	boardfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/leaderboard"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/leaderboard"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/testutil"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/testutil/memstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newHandler() (*boardfeature.Handler, *leaderboard.Service) {
	svc := leaderboard.New(memstore.NewPlayerScores(), memstore.NewDungeonScores(), zap.NewNop())
	return boardfeature.NewHandler(svc, zap.NewNop()), svc
}

func seedPlayer(t *testing.T, svc *leaderboard.Service, username string, score int) primitive.ObjectID {
	t.Helper()
	id := primitive.NewObjectID()
	if _, err := svc.UpsertPlayer(context.Background(), id, leaderboard.PlayerUpdate{
		Username:   username,
		TotalScore: score,
	}); err != nil {
		t.Fatalf("UpsertPlayer failed: %v", err)
	}
	return id
}

func TestServeTopPlayers(t *testing.T) {
	h, svc := newHandler()
	seedPlayer(t, svc, "gold", 300)
	seedPlayer(t, svc, "silver", 200)

	req := testutil.NewRequest("GET", "/leaderboard/players")
	rec := testutil.NewRecorder()
	h.ServeTopPlayers(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var rows []models.PlayerScore
	rec.DecodeJSON(t, &rows)
	if len(rows) != 2 || rows[0].Username != "gold" {
		t.Errorf("got %d rows, first %q", len(rows), rows[0].Username)
	}
}

func TestServePlayerRank(t *testing.T) {
	h, svc := newHandler()
	seedPlayer(t, svc, "gold", 300)
	mid := seedPlayer(t, svc, "silver", 200)

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/leaderboard/players/rank/"+mid.Hex()), "id", mid.Hex())
	rec := testutil.NewRecorder()
	h.ServePlayerRank(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var body struct {
		Rank int64 `json:"rank"`
	}
	rec.DecodeJSON(t, &body)
	if body.Rank != 2 {
		t.Errorf("rank: got %d, want 2", body.Rank)
	}
}

func TestServePlayerRank_NoRow(t *testing.T) {
	h, _ := newHandler()
	unknown := primitive.NewObjectID()

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/leaderboard/players/rank/"+unknown.Hex()), "id", unknown.Hex())
	rec := testutil.NewRecorder()
	h.ServePlayerRank(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertError(t, "Score not found")
}

func TestHandleUpdatePlayer(t *testing.T) {
	h, svc := newHandler()
	caller := testutil.PlayerAccount("scorekeeper")
	target := primitive.NewObjectID()

	req := testutil.NewJSONRequest(t, "POST", "/leaderboard/players/update", map[string]any{
		"user_id":            target.Hex(),
		"username":           "delver",
		"score":              500,
		"dungeons_completed": 7,
	})
	rec := testutil.NewRecorder()
	h.HandleUpdatePlayer(rec.ResponseRecorder, testutil.WithAccount(req, caller))

	rec.AssertStatus(t, http.StatusOK)
	var body struct {
		Message string `json:"message"`
	}
	rec.DecodeJSON(t, &body)
	if body.Message != "Player score updated successfully" {
		t.Errorf("message: got %q, want %q", body.Message, "Player score updated successfully")
	}

	stored, _ := svc.PlayerScore(context.Background(), target)
	if stored == nil {
		t.Fatal("row should be stored under the submitted user id")
	}
	if stored.Username != "delver" || stored.TotalScore != 500 || stored.DungeonsCompleted != 7 {
		t.Errorf("stored row: got %+v", stored)
	}
}

func TestHandleUpdatePlayer_MissingFields(t *testing.T) {
	h, _ := newHandler()
	caller := testutil.PlayerAccount("scorekeeper")

	req := testutil.NewJSONRequest(t, "POST", "/leaderboard/players/update", map[string]any{
		"score": 500,
	})
	rec := testutil.NewRecorder()
	h.HandleUpdatePlayer(rec.ResponseRecorder, testutil.WithAccount(req, caller))

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertError(t, "user_id and username are required")
}

func TestHandleUpdateDungeon(t *testing.T) {
	h, svc := newHandler()
	caller := testutil.PlayerAccount("scorekeeper")
	dungeonID := primitive.NewObjectID()

	req := testutil.NewJSONRequest(t, "POST", "/leaderboard/dungeons/update", map[string]any{
		"dungeon_id":       dungeonID.Hex(),
		"dungeon_name":     "Sunken Crypt",
		"creator_username": "builder",
		"average_rating":   4.5,
		"play_count":       12,
	})
	rec := testutil.NewRecorder()
	h.HandleUpdateDungeon(rec.ResponseRecorder, testutil.WithAccount(req, caller))

	rec.AssertStatus(t, http.StatusOK)
	var body struct {
		Message string `json:"message"`
	}
	rec.DecodeJSON(t, &body)
	if body.Message != "Dungeon score updated successfully" {
		t.Errorf("message: got %q, want %q", body.Message, "Dungeon score updated successfully")
	}

	stored, _ := svc.DungeonScore(context.Background(), dungeonID)
	if stored == nil || stored.AverageRating != 4.5 || stored.CreatorUsername != "builder" {
		t.Errorf("stored row: got %+v", stored)
	}
}

func TestHandleUpdateDungeon_MissingFields(t *testing.T) {
	h, _ := newHandler()
	caller := testutil.PlayerAccount("scorekeeper")

	req := testutil.NewJSONRequest(t, "POST", "/leaderboard/dungeons/update", map[string]any{
		"dungeon_id": primitive.NewObjectID().Hex(),
	})
	rec := testutil.NewRecorder()
	h.HandleUpdateDungeon(rec.ResponseRecorder, testutil.WithAccount(req, caller))

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertError(t, "dungeon_id, dungeon_name, and creator_username are required")
}

func TestHandleUpdateDungeon_BadID(t *testing.T) {
	h, _ := newHandler()
	caller := testutil.PlayerAccount("scorekeeper")

	req := testutil.NewJSONRequest(t, "POST", "/leaderboard/dungeons/update", map[string]any{
		"dungeon_id":       "nope",
		"dungeon_name":     "Sunken Crypt",
		"creator_username": "builder",
	})
	rec := testutil.NewRecorder()
	h.HandleUpdateDungeon(rec.ResponseRecorder, testutil.WithAccount(req, caller))

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertError(t, "Invalid dungeon id")
}

func TestServeDungeonScore_NotFound(t *testing.T) {
	h, _ := newHandler()
	unknown := primitive.NewObjectID()

	req := testutil.WithChiURLParam(testutil.NewRequest("GET", "/leaderboard/dungeons/"+unknown.Hex()), "id", unknown.Hex())
	rec := testutil.NewRecorder()
	h.ServeDungeonScore(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertError(t, "Score not found")
}
