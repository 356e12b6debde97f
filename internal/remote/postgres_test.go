package remote

import (
	"testing"
	"time"

	"github.com/mglaser/bankdesk/internal/types"
)

func TestBuildCallUpdateStatusOnly(t *testing.T) {
	query, args := buildCallUpdate("CALL-1", types.CallPatch{
		Status: types.RemoteStatusRejected,
	})

	want := "UPDATE active_calls SET status = $1 WHERE id = $2"
	if query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
	if len(args) != 2 || args[0] != "rejected" || args[1] != "CALL-1" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildCallUpdateAccept(t *testing.T) {
	query, args := buildCallUpdate("CALL-1", types.CallPatch{
		Status:  types.RemoteStatusInProgress,
		AgentID: "agent-7",
	})

	want := "UPDATE active_calls SET status = $1, agent_id = $2 WHERE id = $3"
	if query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
	if len(args) != 3 || args[1] != "agent-7" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildCallUpdateComplete(t *testing.T) {
	duration := 340
	endedAt := time.Date(2025, 4, 19, 10, 35, 40, 0, time.UTC)
	query, args := buildCallUpdate("CALL-1", types.CallPatch{
		Status:   types.RemoteStatusCompleted,
		Duration: &duration,
		EndedAt:  &endedAt,
	})

	want := "UPDATE active_calls SET status = $1, duration = $2, ended_at = $3 WHERE id = $4"
	if query != want {
		t.Errorf("expected %q, got %q", want, query)
	}
	if len(args) != 4 || args[1] != 340 {
		t.Errorf("unexpected args %v", args)
	}
	if args[2] != endedAt {
		t.Errorf("expected end timestamp argument, got %v", args[2])
	}
}
