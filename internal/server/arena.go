package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"arena-manager/internal/domain"
	"arena-manager/internal/progression"
	"arena-manager/internal/report"
	"arena-manager/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const ArenaServiceName = "arena.v1.Arena"

// ArenaPath is the mux prefix every Arena procedure lives under.
const ArenaPath = "/" + ArenaServiceName + "/"

const (
	SimulateMatchProcedure     = ArenaPath + "SimulateMatch"
	PlayMatchProcedure         = ArenaPath + "PlayMatch"
	ApplyMatchOutcomeProcedure = ArenaPath + "ApplyMatchOutcome"
	OpenCaseProcedure          = ArenaPath + "OpenCase"
	TrainProcedure             = ArenaPath + "Train"
	GetTeamProcedure           = ArenaPath + "GetTeam"
	MatchHistoryProcedure      = ArenaPath + "MatchHistory"
)

type ArenaServer struct {
	svc    *service.ArenaService
	logger zerolog.Logger
}

func NewArenaServer(svc *service.ArenaService, logger zerolog.Logger) *ArenaServer {
	return &ArenaServer{svc: svc, logger: logger}
}

// Handler returns the mux prefix and the handler serving every procedure.
func (s *ArenaServer) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(SimulateMatchProcedure, connect.NewUnaryHandler(SimulateMatchProcedure, s.SimulateMatch, opts...))
	mux.Handle(PlayMatchProcedure, connect.NewUnaryHandler(PlayMatchProcedure, s.PlayMatch, opts...))
	mux.Handle(ApplyMatchOutcomeProcedure, connect.NewUnaryHandler(ApplyMatchOutcomeProcedure, s.ApplyMatchOutcome, opts...))
	mux.Handle(OpenCaseProcedure, connect.NewUnaryHandler(OpenCaseProcedure, s.OpenCase, opts...))
	mux.Handle(TrainProcedure, connect.NewUnaryHandler(TrainProcedure, s.Train, opts...))
	mux.Handle(GetTeamProcedure, connect.NewUnaryHandler(GetTeamProcedure, s.GetTeam, opts...))
	mux.Handle(MatchHistoryProcedure, connect.NewUnaryHandler(MatchHistoryProcedure, s.MatchHistory, opts...))
	return ArenaPath, mux
}

func (s *ArenaServer) SimulateMatch(ctx context.Context, req *connect.Request[SimulateMatchRequest]) (*connect.Response[SimulateMatchResponse], error) {
	if err := validUser(req.Msg.UserID); err != nil {
		return nil, err
	}

	result, err := s.svc.SimulateMatch(ctx, req.Msg.UserID, req.Msg.TacticID, req.Msg.MascotID)
	if err != nil {
		return nil, s.toConnectError(ctx, "simulate match", err)
	}

	return connect.NewResponse(&SimulateMatchResponse{
		Result: toMatchResult(result),
		Report: report.Result(result),
	}), nil
}

func (s *ArenaServer) PlayMatch(ctx context.Context, req *connect.Request[PlayMatchRequest]) (*connect.Response[PlayMatchResponse], error) {
	if err := validUser(req.Msg.UserID); err != nil {
		return nil, err
	}

	rep, err := s.svc.PlayMatch(ctx, service.PlayMatchRequest{
		UserID:   req.Msg.UserID,
		TacticID: req.Msg.TacticID,
		MascotID: req.Msg.MascotID,
		AceBet:   req.Msg.AceBet,
	})
	if err != nil {
		return nil, s.toConnectError(ctx, "play match", err)
	}

	return connect.NewResponse(&PlayMatchResponse{
		MatchID:     rep.MatchID,
		Seed:        rep.Seed,
		Result:      toMatchResult(rep.Result),
		Progression: toProgression(rep.Progression),
		AceStake:    rep.AceStake,
		User:        toUser(rep.User),
		Division:    rep.Division.Name,
		Report:      report.Match(rep.Result, rep.Progression, rep.AceStake, rep.Division),
	}), nil
}

func (s *ArenaServer) ApplyMatchOutcome(ctx context.Context, req *connect.Request[ApplyMatchOutcomeRequest]) (*connect.Response[ApplyMatchOutcomeResponse], error) {
	if err := validUser(req.Msg.UserID); err != nil {
		return nil, err
	}
	outcome := domain.Outcome(req.Msg.Outcome)
	if !outcome.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("outcome must be %s or %s, got %q", domain.OutcomeWin, domain.OutcomeLoss, req.Msg.Outcome))
	}

	summary, err := s.svc.ApplyMatchOutcome(ctx, req.Msg.UserID, outcome, req.Msg.PlayerIDs)
	if err != nil {
		return nil, s.toConnectError(ctx, "apply match outcome", err)
	}
	return connect.NewResponse(&ApplyMatchOutcomeResponse{Progression: toProgression(summary)}), nil
}

func (s *ArenaServer) OpenCase(ctx context.Context, req *connect.Request[OpenCaseRequest]) (*connect.Response[OpenCaseResponse], error) {
	if err := validUser(req.Msg.UserID); err != nil {
		return nil, err
	}
	if req.Msg.CaseCost < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("case cost must not be negative, got %d", req.Msg.CaseCost))
	}

	out, err := s.svc.OpenCase(ctx, req.Msg.UserID, req.Msg.CaseCost)
	if err != nil {
		return nil, s.toConnectError(ctx, "open case", err)
	}

	return connect.NewResponse(&OpenCaseResponse{
		Rarity:   out.Rarity,
		Position: string(out.Position),
		CostPaid: out.CostPaid,
		Player:   toPlayer(out.Player),
		Report:   report.Case(out),
	}), nil
}

func (s *ArenaServer) Train(ctx context.Context, req *connect.Request[TrainRequest]) (*connect.Response[TrainResponse], error) {
	if err := validUser(req.Msg.UserID); err != nil {
		return nil, err
	}

	p, err := s.svc.Train(ctx, req.Msg.UserID, req.Msg.PlayerID, req.Msg.TrainingID)
	if err != nil {
		return nil, s.toConnectError(ctx, "train", err)
	}
	return connect.NewResponse(&TrainResponse{Player: toPlayer(p)}), nil
}

func (s *ArenaServer) GetTeam(ctx context.Context, req *connect.Request[GetTeamRequest]) (*connect.Response[GetTeamResponse], error) {
	if err := validUser(req.Msg.UserID); err != nil {
		return nil, err
	}

	team, err := s.svc.GetTeam(ctx, req.Msg.UserID)
	if err != nil {
		return nil, s.toConnectError(ctx, "get team", err)
	}

	roster := make([]Player, 0, len(team.Roster))
	for _, p := range team.Roster {
		roster = append(roster, toPlayer(p))
	}

	return connect.NewResponse(&GetTeamResponse{
		User:     toUser(team.User),
		Roster:   roster,
		Payroll:  team.Payroll,
		Division: team.Division.Name,
		Motto:    team.Division.Motto,
		Report:   report.Team(team.User, team.Roster, team.Payroll, team.Division),
	}), nil
}

func (s *ArenaServer) MatchHistory(ctx context.Context, req *connect.Request[MatchHistoryRequest]) (*connect.Response[MatchHistoryResponse], error) {
	if err := validUser(req.Msg.UserID); err != nil {
		return nil, err
	}

	records, err := s.svc.MatchHistory(ctx, req.Msg.UserID, req.Msg.Limit)
	if err != nil {
		return nil, s.toConnectError(ctx, "match history", err)
	}

	matches := make([]MatchRecord, 0, len(records))
	for _, m := range records {
		matches = append(matches, MatchRecord{
			MatchID:    m.MatchID,
			Map:        m.Map,
			Outcome:    string(m.Outcome),
			UserWins:   m.UserWins,
			EnemyWins:  m.EnemyWins,
			UserPower:  m.UserPower,
			EnemyPower: m.EnemyPower,
			TacticID:   m.TacticID,
			MascotID:   m.MascotID,
			Seed:       m.Seed,
			PlayedAt:   m.PlayedAt,
		})
	}
	return connect.NewResponse(&MatchHistoryResponse{Matches: matches}), nil
}

func validUser(userID int64) error {
	if userID <= 0 {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("user_id must be positive, got %d", userID))
	}
	return nil
}

// toConnectError maps the domain error taxonomy onto Connect codes and logs
// anything that is not the caller's fault.
func (s *ArenaServer) toConnectError(ctx context.Context, op string, err error) error {
	code := errorCode(err)
	log := zerolog.Ctx(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = &s.logger
	}
	if code == connect.CodeInternal || code == connect.CodeUnavailable {
		log.Error().Err(err).Str("op", op).Str("code", code.String()).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("op", op).Str("code", code.String()).Msg("request rejected")
	}
	return connect.NewError(code, err)
}

func errorCode(err error) connect.Code {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientRoster),
		errors.Is(err, domain.ErrRosterFatigued):
		return connect.CodeFailedPrecondition
	case domain.IsConfigError(err):
		return connect.CodeInvalidArgument
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrPlayerNotFound):
		return connect.CodeNotFound
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case domain.IsPersistenceError(err):
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}

func toMatchResult(r domain.MatchResult) MatchResult {
	events := make([]SpecialEvent, 0, len(r.SpecialEvents))
	for _, ev := range r.SpecialEvents {
		events = append(events, SpecialEvent{Kind: ev.Kind, RoundNumber: ev.RoundNumber, WinnerSide: string(ev.WinnerSide)})
	}
	return MatchResult{
		Map:           r.Map,
		Outcome:       string(r.Outcome()),
		UserWins:      r.UserWins,
		EnemyWins:     r.EnemyWins,
		Rounds:        r.Rounds,
		SpecialEvents: events,
		UserPower:     r.UserPower,
		EnemyPower:    r.EnemyPower,
	}
}

func toProgression(s progression.Summary) Progression {
	out := Progression{
		Outcome:     string(s.Outcome),
		Currency:    s.Currency,
		Fans:        s.Fans,
		Morale:      s.Morale,
		StaminaLoss: s.StaminaLoss,
		AcePayout:   s.AcePayout,
	}
	if s.Ambient != nil {
		out.Ambient = &Ambient{
			Name:      s.Ambient.Event.Name,
			Morale:    s.Ambient.Event.Morale,
			Stamina:   s.Ambient.Event.Stamina,
			PlayerIDs: s.Ambient.PlayerIDs,
		}
	}
	return out
}

func toUser(u domain.User) User {
	return User{UserID: u.UserID, Balance: u.Balance, Fans: u.Fans, Morale: u.Morale}
}

func toPlayer(p domain.Player) Player {
	return Player{
		ID:       p.ID,
		Nickname: p.Nickname,
		Position: string(p.Position),
		Rarity:   p.Rarity,
		Aim:      p.Aim,
		Reaction: p.Reaction,
		Tactics:  p.Tactics,
		Stamina:  p.Stamina,
		Morale:   p.Morale,
	}
}
