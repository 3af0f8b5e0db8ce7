package snapshots_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/arpg-core/internal/domain/shared"
	coreerr "github.com/KirkDiggler/arpg-core/internal/errors"
	"github.com/KirkDiggler/arpg-core/internal/repositories/snapshots"
	snapshotmocks "github.com/KirkDiggler/arpg-core/internal/repositories/snapshots/mocks"
	"github.com/KirkDiggler/arpg-core/internal/resources"
	uuidmocks "github.com/KirkDiggler/arpg-core/internal/uuid/mocks"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mock     redismock.ClientMock
	mockTime *snapshotmocks.MockTimeProvider
	mockUUID *uuidmocks.MockGenerator
	repo     snapshots.Repository
	ctx      context.Context
	now      time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.ctrl = gomock.NewController(s.T())
	s.mock = mock
	s.mockTime = snapshotmocks.NewMockTimeProvider(s.ctrl)
	s.mockUUID = uuidmocks.NewMockGenerator(s.ctrl)
	s.repo = snapshots.NewRedis(&snapshots.RedisConfig{
		Client:        client,
		TimeProvider:  s.mockTime,
		UUIDGenerator: s.mockUUID,
	})
	s.ctx = context.Background()
	s.now = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

// testMeta mirrors the serialized meta section
type testMeta struct {
	PlayerID      string    `json:"player_id"`
	RevisionID    string    `json:"revision_id"`
	ActiveClassID string    `json:"active_class_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *RedisRepositoryTestSuite) testData() *snapshots.Data {
	return &snapshots.Data{
		PlayerID:      "player-1",
		ActiveClassID: "stormcaller",
		Resources:     resources.State{Health: 72.5, Mana: 40, MaxHealth: 90, MaxMana: 120},
		SlotMap: map[shared.SlotID]string{
			shared.SlotSkill1:      "ice_shard",
			shared.SlotConsumable1: "mana_potion",
		},
	}
}

func (s *RedisRepositoryTestSuite) TestSave() {
	data := s.testData()

	s.mockTime.EXPECT().Now().Return(s.now)
	s.mockUUID.EXPECT().New().Return("rev-123")

	meta, err := json.Marshal(testMeta{
		PlayerID:      "player-1",
		RevisionID:    "rev-123",
		ActiveClassID: "stormcaller",
		CreatedAt:     s.now,
		UpdatedAt:     s.now,
	})
	s.Require().NoError(err)
	res, err := json.Marshal(data.Resources)
	s.Require().NoError(err)
	slots, err := json.Marshal(data.SlotMap)
	s.Require().NoError(err)

	s.mock.ExpectSet("player:player-1:meta", string(meta), 0).SetVal("OK")
	s.mock.ExpectSet("player:player-1:resources", string(res), 0).SetVal("OK")
	s.mock.ExpectSet("player:player-1:loadout", string(slots), 0).SetVal("OK")

	s.Require().NoError(s.repo.Save(s.ctx, data))
	s.Equal("rev-123", data.RevisionID)
	s.Equal(s.now, data.CreatedAt)
	s.Equal(s.now, data.UpdatedAt)
}

func (s *RedisRepositoryTestSuite) TestSavePreservesCreatedAt() {
	created := s.now.Add(-24 * time.Hour)
	data := s.testData()
	data.CreatedAt = created

	s.mockTime.EXPECT().Now().Return(s.now)
	s.mockUUID.EXPECT().New().Return("rev-124")

	meta, err := json.Marshal(testMeta{
		PlayerID:      "player-1",
		RevisionID:    "rev-124",
		ActiveClassID: "stormcaller",
		CreatedAt:     created,
		UpdatedAt:     s.now,
	})
	s.Require().NoError(err)
	res, err := json.Marshal(data.Resources)
	s.Require().NoError(err)
	slots, err := json.Marshal(data.SlotMap)
	s.Require().NoError(err)

	s.mock.ExpectSet("player:player-1:meta", string(meta), 0).SetVal("OK")
	s.mock.ExpectSet("player:player-1:resources", string(res), 0).SetVal("OK")
	s.mock.ExpectSet("player:player-1:loadout", string(slots), 0).SetVal("OK")

	s.Require().NoError(s.repo.Save(s.ctx, data))
	s.Equal(created, data.CreatedAt)
}

func (s *RedisRepositoryTestSuite) TestSaveValidation() {
	s.True(coreerr.IsCode(s.repo.Save(s.ctx, nil), coreerr.CodeInvalidArgument))

	data := s.testData()
	data.PlayerID = ""
	s.True(coreerr.IsCode(s.repo.Save(s.ctx, data), coreerr.CodeInvalidArgument))
}

func (s *RedisRepositoryTestSuite) TestGet() {
	meta, err := json.Marshal(testMeta{
		PlayerID:      "player-1",
		RevisionID:    "rev-123",
		ActiveClassID: "stormcaller",
		CreatedAt:     s.now.Add(-time.Hour),
		UpdatedAt:     s.now,
	})
	s.Require().NoError(err)
	res, err := json.Marshal(resources.State{Health: 72.5, Mana: 40, MaxHealth: 90, MaxMana: 120})
	s.Require().NoError(err)
	slots, err := json.Marshal(map[shared.SlotID]string{shared.SlotSkill1: "ice_shard"})
	s.Require().NoError(err)

	// The three reads run concurrently
	s.mock.MatchExpectationsInOrder(false)
	s.mock.ExpectGet("player:player-1:meta").SetVal(string(meta))
	s.mock.ExpectGet("player:player-1:resources").SetVal(string(res))
	s.mock.ExpectGet("player:player-1:loadout").SetVal(string(slots))

	data, err := s.repo.Get(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("player-1", data.PlayerID)
	s.Equal("rev-123", data.RevisionID)
	s.Equal("stormcaller", data.ActiveClassID)
	s.Equal(72.5, data.Resources.Health)
	s.Equal(120.0, data.Resources.MaxMana)
	s.Equal("ice_shard", data.SlotMap[shared.SlotSkill1])
	s.Equal(s.now, data.UpdatedAt)
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	s.mock.MatchExpectationsInOrder(false)
	s.mock.ExpectGet("player:ghost:meta").RedisNil()
	s.mock.ExpectGet("player:ghost:resources").RedisNil()
	s.mock.ExpectGet("player:ghost:loadout").RedisNil()

	data, err := s.repo.Get(s.ctx, "ghost")
	s.Nil(data)
	s.True(coreerr.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetValidation() {
	data, err := s.repo.Get(s.ctx, "")
	s.Nil(data)
	s.True(coreerr.IsCode(err, coreerr.CodeInvalidArgument))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	s.mock.ExpectDel("player:player-1:meta", "player:player-1:resources", "player:player-1:loadout").SetVal(3)

	s.Require().NoError(s.repo.Delete(s.ctx, "player-1"))
}

func (s *RedisRepositoryTestSuite) TestDeleteValidation() {
	s.True(coreerr.IsCode(s.repo.Delete(s.ctx, ""), coreerr.CodeInvalidArgument))
}
