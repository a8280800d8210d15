package friendships_test

import (
	"context"
	"testing"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/friendships"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/testutil/memstore"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newService() *friendships.Service {
	return friendships.New(memstore.NewFriendships(), zap.NewNop())
}

func TestSendRequest(t *testing.T) {
	svc := newService()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()

	f, err := svc.SendRequest(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}
	if f.Status != models.FriendshipPending {
		t.Errorf("Status: got %q, want %q", f.Status, models.FriendshipPending)
	}
	if f.RequesterID != alice || f.AddresseeID != bob {
		t.Error("row direction must match requester -> addressee")
	}
}

func TestSendRequest_Self(t *testing.T) {
	svc := newService()
	alice := primitive.NewObjectID()
	if _, err := svc.SendRequest(context.Background(), alice, alice); err != friendships.ErrSelfRequest {
		t.Errorf("got %v, want ErrSelfRequest", err)
	}
}

func TestSendRequest_DuplicateEitherDirection(t *testing.T) {
	svc := newService()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()

	if _, err := svc.SendRequest(context.Background(), alice, bob); err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != friendships.ErrDuplicateRequest {
		t.Errorf("same direction: got %v, want ErrDuplicateRequest", err)
	}
	if _, err := svc.SendRequest(context.Background(), bob, alice); err != friendships.ErrDuplicateRequest {
		t.Errorf("reverse direction: got %v, want ErrDuplicateRequest", err)
	}
}

func TestAccept(t *testing.T) {
	svc := newService()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}

	ok, err := svc.Accept(context.Background(), bob, alice)
	if err != nil || !ok {
		t.Fatalf("Accept: got (%v, %v), want (true, nil)", ok, err)
	}

	// Friendship is symmetric once accepted.
	for _, pair := range [][2]primitive.ObjectID{{alice, bob}, {bob, alice}} {
		friends, err := svc.AreFriends(context.Background(), pair[0], pair[1])
		if err != nil {
			t.Fatalf("AreFriends failed: %v", err)
		}
		if !friends {
			t.Error("expected pair to be friends in both orders")
		}
	}
}

func TestAccept_WrongDirection(t *testing.T) {
	svc := newService()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}

	// The requester cannot accept their own request.
	ok, err := svc.Accept(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}
	if ok {
		t.Error("requester must not be able to accept their own request")
	}
}

func TestReject_BlocksReRequest(t *testing.T) {
	svc := newService()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != nil {
		t.Fatalf("SendRequest failed: %v", err)
	}

	ok, err := svc.Reject(context.Background(), bob, alice)
	if err != nil || !ok {
		t.Fatalf("Reject: got (%v, %v), want (true, nil)", ok, err)
	}

	// The rejected row lingers; a new request between the pair fails.
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != friendships.ErrDuplicateRequest {
		t.Errorf("got %v, want ErrDuplicateRequest after rejection", err)
	}
}

func TestFriendsList(t *testing.T) {
	svc := newService()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()

	// alice -> bob accepted; carol -> alice accepted; alice -> carol would
	// be a duplicate. Both show up in alice's list regardless of direction.
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SendRequest(context.Background(), carol, alice); err != nil {
		t.Fatal(err)
	}
	if ok, err := svc.Accept(context.Background(), bob, alice); err != nil || !ok {
		t.Fatal("accept bob failed")
	}
	if ok, err := svc.Accept(context.Background(), alice, carol); err != nil || !ok {
		t.Fatal("accept carol failed")
	}

	ids, err := svc.Friends(context.Background(), alice)
	if err != nil {
		t.Fatalf("Friends failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d friends, want 2", len(ids))
	}
	seen := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[bob] || !seen[carol] {
		t.Error("friend list must contain the other party of each accepted row")
	}
}

func TestRemove(t *testing.T) {
	svc := newService()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != nil {
		t.Fatal(err)
	}
	if ok, _ := svc.Accept(context.Background(), bob, alice); !ok {
		t.Fatal("accept failed")
	}

	// Either side can remove.
	ok, err := svc.Remove(context.Background(), bob, alice)
	if err != nil || !ok {
		t.Fatalf("Remove: got (%v, %v), want (true, nil)", ok, err)
	}
	friends, _ := svc.AreFriends(context.Background(), alice, bob)
	if friends {
		t.Error("pair should no longer be friends")
	}

	// A fresh request is allowed after removal.
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != nil {
		t.Errorf("re-request after removal failed: %v", err)
	}
}

func TestRemove_NotAccepted(t *testing.T) {
	svc := newService()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != nil {
		t.Fatal(err)
	}

	ok, err := svc.Remove(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if ok {
		t.Error("a pending row is not removable as a friendship")
	}
}

func TestBlockAndUnblock(t *testing.T) {
	svc := newService()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()

	// Block with no prior row inserts one.
	f, err := svc.Block(context.Background(), alice, bob)
	if err != nil {
		t.Fatalf("Block failed: %v", err)
	}
	if f.Status != models.FriendshipBlocked {
		t.Errorf("Status: got %q, want %q", f.Status, models.FriendshipBlocked)
	}

	blocked, err := svc.IsBlocked(context.Background(), bob, alice)
	if err != nil || !blocked {
		t.Fatalf("IsBlocked: got (%v, %v), want (true, nil)", blocked, err)
	}

	ok, err := svc.Unblock(context.Background(), alice, bob)
	if err != nil || !ok {
		t.Fatalf("Unblock: got (%v, %v), want (true, nil)", ok, err)
	}

	// Unblock deletes the row, so a fresh request works.
	if _, err := svc.SendRequest(context.Background(), bob, alice); err != nil {
		t.Errorf("request after unblock failed: %v", err)
	}
}

func TestBlock_OverwritesExistingRow(t *testing.T) {
	svc := newService()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != nil {
		t.Fatal(err)
	}
	if ok, _ := svc.Accept(context.Background(), bob, alice); !ok {
		t.Fatal("accept failed")
	}

	// Blocking an accepted friend flips the same row to blocked.
	if _, err := svc.Block(context.Background(), bob, alice); err != nil {
		t.Fatalf("Block failed: %v", err)
	}
	friends, _ := svc.AreFriends(context.Background(), alice, bob)
	if friends {
		t.Error("blocked pair must not read as friends")
	}

	pending, err := svc.PendingRequests(context.Background(), bob)
	if err != nil {
		t.Fatalf("PendingRequests failed: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("got %d pending requests, want 0", len(pending))
	}
}

func TestPendingAndSent(t *testing.T) {
	svc := newService()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	if _, err := svc.SendRequest(context.Background(), alice, bob); err != nil {
		t.Fatal(err)
	}

	pending, err := svc.PendingRequests(context.Background(), bob)
	if err != nil {
		t.Fatalf("PendingRequests failed: %v", err)
	}
	if len(pending) != 1 || pending[0].RequesterID != alice {
		t.Errorf("pending list: got %d rows", len(pending))
	}

	sent, err := svc.SentRequests(context.Background(), alice)
	if err != nil {
		t.Fatalf("SentRequests failed: %v", err)
	}
	if len(sent) != 1 || sent[0].AddresseeID != bob {
		t.Errorf("sent list: got %d rows", len(sent))
	}

	// The other sides see nothing.
	if rows, _ := svc.PendingRequests(context.Background(), alice); len(rows) != 0 {
		t.Errorf("requester's pending list should be empty, got %d", len(rows))
	}
	if rows, _ := svc.SentRequests(context.Background(), bob); len(rows) != 0 {
		t.Errorf("addressee's sent list should be empty, got %d", len(rows))
	}
}
