package modificationrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/modificationrepo"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/modification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ModificationRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *modificationrepo.GormModificationRepository
}

func (suite *ModificationRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *ModificationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.repository = modificationrepo.NewGormModificationRepository(suite.database.DB)
}

func (suite *ModificationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *ModificationRepositoryIntegrationTestSuite) TestAdd_ItemsRequest_RoundTrips() {
	ctx := context.Background()
	req := suite.itemsRequest(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, req))

	restored, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)

	suite.True(req.ID().IsEqual(restored.ID()))
	suite.True(req.OrderID().IsEqual(restored.OrderID()))
	suite.Equal(modification.TypeItems, restored.Type())
	suite.Equal(modification.StatusPending, restored.Status())
	suite.Equal("need more", restored.Reason())
	suite.Require().Len(restored.NewItems(), 1)
	suite.Require().NotNil(restored.NewTotalAmount())
	suite.True(decimal.RequireFromString("7.50").Equal(*restored.NewTotalAmount()))
	suite.Nil(restored.ReviewedBy())
	suite.Nil(restored.ReviewedAt())
}

func (suite *ModificationRepositoryIntegrationTestSuite) TestAdd_CancelRequest_StoresNoItems() {
	ctx := context.Background()
	req, err := modification.NewRequest(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		modification.TypeCancel, nil, "wrong address", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, req))

	restored, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)

	suite.Equal(modification.TypeCancel, restored.Type())
	suite.Empty(restored.NewItems())
	suite.Nil(restored.NewTotalAmount())
}

func (suite *ModificationRepositoryIntegrationTestSuite) TestAdd_SecondPendingForOrder_ReturnsConflict() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Add(ctx, suite.itemsRequest(orderID)))

	err := suite.repository.Add(ctx, suite.itemsRequest(orderID))

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Equal(modification.ReasonPendingExists, errs.ReasonOf(err))
	suite.assertCount(1)
}

func (suite *ModificationRepositoryIntegrationTestSuite) TestAdd_AfterReview_AllowsNewPending() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	first := suite.itemsRequest(orderID)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(first.Review(modification.StatusRejected, kernel.NewUUID(), "no", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(suite.repository.Add(ctx, suite.itemsRequest(orderID)))
	suite.assertCount(2)
}

func (suite *ModificationRepositoryIntegrationTestSuite) TestUpdate_RecordsReview() {
	ctx := context.Background()
	req := suite.itemsRequest(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, req))

	reviewer := kernel.NewUUID()
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	suite.Require().NoError(req.Review(modification.StatusApproved, reviewer, "ok", at))
	suite.Require().NoError(suite.repository.Update(ctx, req))

	restored, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)
	suite.Equal(modification.StatusApproved, restored.Status())
	suite.Equal("ok", restored.AdminResponse())
	suite.Require().NotNil(restored.ReviewedBy())
	suite.True(reviewer.IsEqual(*restored.ReviewedBy()))
	suite.Require().NotNil(restored.ReviewedAt())
	suite.True(at.Equal(*restored.ReviewedAt()))
}

func (suite *ModificationRepositoryIntegrationTestSuite) TestUpdate_AlreadyReviewedRow_ReturnsConflict() {
	ctx := context.Background()
	req := suite.itemsRequest(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, req))

	stale, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(req.Review(modification.StatusApproved, kernel.NewUUID(), "", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, req))

	suite.Require().NoError(stale.Review(modification.StatusRejected, kernel.NewUUID(), "late", time.Now()))
	err = suite.repository.Update(ctx, stale)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Equal(modification.ReasonAlreadyReviewed, errs.ReasonOf(err))

	restored, err := suite.repository.Get(ctx, req.ID())
	suite.Require().NoError(err)
	suite.Equal(modification.StatusApproved, restored.Status())
}

func (suite *ModificationRepositoryIntegrationTestSuite) TestUpdate_PendingRequest_IsRejected() {
	ctx := context.Background()
	req := suite.itemsRequest(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, req))

	err := suite.repository.Update(ctx, req)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.Contains(err.Error(), modificationrepo.ErrRequestNotReviewed.Error())
}

func (suite *ModificationRepositoryIntegrationTestSuite) TestUpdate_MissingRow_ReturnsNotFound() {
	req := suite.itemsRequest(kernel.NewUUID())
	suite.Require().NoError(req.Review(modification.StatusRejected, kernel.NewUUID(), "", time.Now()))

	err := suite.repository.Update(context.Background(), req)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ModificationRepositoryIntegrationTestSuite) TestFindPendingByOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	_, err := suite.repository.FindPendingByOrder(ctx, orderID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	resolved := suite.itemsRequest(orderID)
	suite.Require().NoError(suite.repository.Add(ctx, resolved))
	suite.Require().NoError(resolved.Review(modification.StatusRejected, kernel.NewUUID(), "", time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, resolved))

	_, err = suite.repository.FindPendingByOrder(ctx, orderID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	pending := suite.itemsRequest(orderID)
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	found, err := suite.repository.FindPendingByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(pending.ID().IsEqual(found.ID()))
}

func (suite *ModificationRepositoryIntegrationTestSuite) TestGetForUpdate_ReturnsLockedRow() {
	ctx := context.Background()
	req := suite.itemsRequest(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, req))

	tx := suite.database.DB.Begin()
	defer tx.Rollback()

	locked, err := modificationrepo.NewGormModificationRepository(tx).GetForUpdate(ctx, req.ID())
	suite.Require().NoError(err)
	suite.True(req.ID().IsEqual(locked.ID()))

	var skipped int64
	suite.Require().NoError(suite.database.DB.
		Raw("SELECT count(*) FROM (SELECT id FROM modification_requests WHERE id = ? FOR UPDATE SKIP LOCKED) t", req.ID().Raw()).
		Scan(&skipped).Error)
	suite.Zero(skipped)
}

func (suite *ModificationRepositoryIntegrationTestSuite) itemsRequest(orderID kernel.UUID) *modification.Request {
	item, err := order.NewLineItem("p-1", "SKU-1", decimal.RequireFromString("2.50"), 3, "USD")
	suite.Require().NoError(err)
	items, err := order.NewItems(item)
	suite.Require().NoError(err)

	req, err := modification.NewRequest(kernel.NewUUID(), orderID, kernel.NewUUID(),
		modification.TypeItems, items, "need more", time.Now())
	suite.Require().NoError(err)
	return req
}

func (suite *ModificationRepositoryIntegrationTestSuite) assertCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.database.DB.Model(&modificationrepo.RequestDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestModificationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ModificationRepositoryIntegrationTestSuite))
}
