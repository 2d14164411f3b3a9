package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"arena-manager/internal/database"
	"arena-manager/internal/domain"
	"arena-manager/internal/engine"
	"arena-manager/internal/gamecfg"
	"arena-manager/internal/progression"
	"arena-manager/internal/repository"
	"arena-manager/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg, err := gamecfg.Load("")
	if err != nil {
		t.Fatal(err)
	}
	db, err := database.Open(filepath.Join(t.TempDir(), "arena.db"), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	e := engine.New(cfg)
	store := repository.NewStoreWithPolicy(db, repository.RetryPolicy{Attempts: 1, Base: time.Millisecond}, zerolog.Nop())
	svc := service.NewArenaService(e, progression.NewApplier(e, zerolog.Nop()), store, zerolog.Nop())

	mux := http.NewServeMux()
	path, handler := NewArenaServer(svc, zerolog.Nop()).Handler()
	mux.Handle(path, handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func call[Req, Res any](t *testing.T, srv *httptest.Server, procedure string, req *Req) (*Res, error) {
	t.Helper()
	client := connect.NewClient[Req, Res](srv.Client(), srv.URL+procedure, connect.WithCodec(jsonCodec{}))
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

func TestGetTeamProvisionsUser(t *testing.T) {
	srv := newTestServer(t)

	resp, err := call[GetTeamRequest, GetTeamResponse](t, srv, GetTeamProcedure, &GetTeamRequest{UserID: 42})
	if err != nil {
		t.Fatalf("GetTeam: %v", err)
	}
	if resp.User.Balance != 10000 || len(resp.Roster) != 5 {
		t.Fatalf("team = %+v", resp)
	}
	if resp.Division != "Basement Warriors" || resp.Report == "" {
		t.Fatalf("division/report = %q/%q", resp.Division, resp.Report)
	}
}

func TestPlayMatchAndHistory(t *testing.T) {
	srv := newTestServer(t)

	played, err := call[PlayMatchRequest, PlayMatchResponse](t, srv, PlayMatchProcedure, &PlayMatchRequest{UserID: 1, TacticID: "control", MascotID: "bear"})
	if err != nil {
		t.Fatalf("PlayMatch: %v", err)
	}
	if max(played.Result.UserWins, played.Result.EnemyWins) != 13 {
		t.Fatalf("score %d-%d", played.Result.UserWins, played.Result.EnemyWins)
	}
	if played.MatchID == "" || played.Report == "" {
		t.Fatalf("response = %+v", played)
	}

	history, err := call[MatchHistoryRequest, MatchHistoryResponse](t, srv, MatchHistoryProcedure, &MatchHistoryRequest{UserID: 1})
	if err != nil {
		t.Fatalf("MatchHistory: %v", err)
	}
	if len(history.Matches) != 1 || history.Matches[0].MatchID != played.MatchID {
		t.Fatalf("history = %+v", history.Matches)
	}
}

func TestOpenCaseAndTrain(t *testing.T) {
	srv := newTestServer(t)

	opened, err := call[OpenCaseRequest, OpenCaseResponse](t, srv, OpenCaseProcedure, &OpenCaseRequest{UserID: 3, CaseCost: 500})
	if err != nil {
		t.Fatalf("OpenCase: %v", err)
	}
	if opened.CostPaid != 500 || opened.Player.ID == "" {
		t.Fatalf("case = %+v", opened)
	}

	trained, err := call[TrainRequest, TrainResponse](t, srv, TrainProcedure, &TrainRequest{UserID: 3, PlayerID: opened.Player.ID, TrainingID: "knives"})
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if trained.Player.Stamina != opened.Player.Stamina-15 {
		t.Fatalf("stamina = %d, want %d", trained.Player.Stamina, opened.Player.Stamina-15)
	}
}

func TestApplyMatchOutcome(t *testing.T) {
	srv := newTestServer(t)

	resp, err := call[ApplyMatchOutcomeRequest, ApplyMatchOutcomeResponse](t, srv, ApplyMatchOutcomeProcedure, &ApplyMatchOutcomeRequest{UserID: 5, Outcome: "WIN"})
	if err != nil {
		t.Fatalf("ApplyMatchOutcome: %v", err)
	}
	if resp.Progression.Currency != 3000 || resp.Progression.Fans != 50 {
		t.Fatalf("progression = %+v", resp.Progression)
	}

	_, err = call[ApplyMatchOutcomeRequest, ApplyMatchOutcomeResponse](t, srv, ApplyMatchOutcomeProcedure, &ApplyMatchOutcomeRequest{UserID: 5, Outcome: "DRAW"})
	if got := connect.CodeOf(err); got != connect.CodeInvalidArgument {
		t.Fatalf("DRAW code = %v, want %v", got, connect.CodeInvalidArgument)
	}
}

func TestErrorCodes(t *testing.T) {
	srv := newTestServer(t)

	_, err := call[SimulateMatchRequest, SimulateMatchResponse](t, srv, SimulateMatchProcedure, &SimulateMatchRequest{UserID: 1, TacticID: "zerg", MascotID: "none"})
	if got := connect.CodeOf(err); got != connect.CodeInvalidArgument {
		t.Fatalf("unknown tactic code = %v, want %v", got, connect.CodeInvalidArgument)
	}

	_, err = call[GetTeamRequest, GetTeamResponse](t, srv, GetTeamProcedure, &GetTeamRequest{UserID: 0})
	if got := connect.CodeOf(err); got != connect.CodeInvalidArgument {
		t.Fatalf("zero user code = %v, want %v", got, connect.CodeInvalidArgument)
	}

	_, err = call[TrainRequest, TrainResponse](t, srv, TrainProcedure, &TrainRequest{UserID: 1, PlayerID: "nobody", TrainingID: "clay"})
	if got := connect.CodeOf(err); got != connect.CodeNotFound {
		t.Fatalf("missing player code = %v, want %v", got, connect.CodeNotFound)
	}

	for i := 0; i < 25; i++ {
		if _, err = call[OpenCaseRequest, OpenCaseResponse](t, srv, OpenCaseProcedure, &OpenCaseRequest{UserID: 1, CaseCost: 500}); err != nil {
			break
		}
	}
	if got := connect.CodeOf(err); got != connect.CodeFailedPrecondition {
		t.Fatalf("overspend code = %v, want %v", got, connect.CodeFailedPrecondition)
	}
}

func TestErrorCodeMapping(t *testing.T) {
	tcs := []struct {
		err  error
		want connect.Code
	}{
		{fmt.Errorf("x: %w", domain.ErrInsufficientFunds), connect.CodeFailedPrecondition},
		{domain.ErrInsufficientRoster, connect.CodeFailedPrecondition},
		{domain.ErrRosterFatigued, connect.CodeFailedPrecondition},
		{&domain.ConfigError{Kind: "mascot", Key: "dragon"}, connect.CodeInvalidArgument},
		{domain.ErrUserNotFound, connect.CodeNotFound},
		{&domain.PersistenceError{Op: "get", Err: context.Canceled}, connect.CodeCanceled},
		{context.DeadlineExceeded, connect.CodeDeadlineExceeded},
		{&domain.PersistenceError{Op: "commit", Err: errors.New("disk I/O error")}, connect.CodeUnavailable},
		{errors.New("boom"), connect.CodeInternal},
	}
	for _, tc := range tcs {
		if got := errorCode(tc.err); got != tc.want {
			t.Fatalf("errorCode(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
