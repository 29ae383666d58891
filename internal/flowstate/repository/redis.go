package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/starloomhq/starloom/internal/clock"
	"github.com/starloomhq/starloom/internal/flowstate/domain"
)

// flowTTL bounds how long an abandoned flow lingers. Every save refreshes
// it, so active flows never expire mid-purchase.
const flowTTL = 24 * time.Hour

type Params struct {
	fx.In

	Log   *zap.Logger
	Redis *redis.Client
	GenID *snowflake.Node
	Clock clock.Clock
}

type redisStore struct {
	log   *zap.Logger
	redis *redis.Client
	genID *snowflake.Node
	clock clock.Clock
}

func New(p Params) domain.Store {
	return &redisStore{
		log:   p.Log.Named("flowstate.repository"),
		redis: p.Redis,
		genID: p.GenID,
		clock: p.Clock,
	}
}

func flowKey(id string) string {
	return "flow:" + id
}

func (r *redisStore) Create(ctx context.Context) (*domain.FlowState, error) {
	now := r.clock.Now(ctx).UTC()
	flow := &domain.FlowState{
		ID:        fmt.Sprintf("flow_%s", r.genID.Generate()),
		State:     domain.StateNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.write(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

func (r *redisStore) Get(ctx context.Context, id string) (*domain.FlowState, error) {
	raw, err := r.redis.Get(ctx, flowKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrFlowNotFound
	}
	if err != nil {
		return nil, err
	}

	var flow domain.FlowState
	if err := json.Unmarshal(raw, &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

func (r *redisStore) Save(ctx context.Context, flow *domain.FlowState) error {
	flow.UpdatedAt = r.clock.Now(ctx).UTC()
	return r.write(ctx, flow)
}

func (r *redisStore) write(ctx context.Context, flow *domain.FlowState) error {
	raw, err := json.Marshal(flow)
	if err != nil {
		return err
	}
	return r.redis.Set(ctx, flowKey(flow.ID), raw, flowTTL).Err()
}
