package service

import (
	"context"
	"strings"
	"testing"

	"github.com/arjunms/maninventory-api/internal/config"
	"github.com/arjunms/maninventory-api/internal/infrastructure/aigateway"
	"github.com/arjunms/maninventory-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation runs before any gateway call, so these tests use an
// unconfigured client: reaching the gateway would surface ErrStoreUnavailable
// instead of the expected validation error.
func newUnconfiguredAIService() *AIService {
	return NewAIService(aigateway.NewClient(&config.AIConfig{}), nil, nil)
}

func TestInsightsPeriodTooLong(t *testing.T) {
	svc := newUnconfiguredAIService()

	_, err := svc.GetAnalyticsInsights(context.Background(), uuid.New(),
		strings.Repeat("x", 21), &AnalyticsSummary{})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestInsightsNilSummary(t *testing.T) {
	svc := newUnconfiguredAIService()

	_, err := svc.GetAnalyticsInsights(context.Background(), uuid.New(), "7 days", nil)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestInsightsOversizedSummary(t *testing.T) {
	svc := newUnconfiguredAIService()

	summary := &AnalyticsSummary{
		TopProducts: make([]TopProductPoint, maxPromptArrayLen+1),
	}
	_, err := svc.GetAnalyticsInsights(context.Background(), uuid.New(), "7 days", summary)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestInsightsValidInputReachesGateway(t *testing.T) {
	svc := newUnconfiguredAIService()

	_, err := svc.GetAnalyticsInsights(context.Background(), uuid.New(), "", &AnalyticsSummary{})
	assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
}

func TestExtractProductsEmptyContent(t *testing.T) {
	svc := newUnconfiguredAIService()

	_, err := svc.ExtractProductsFromFile(context.Background(), "stock.csv", "")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestExtractProductsContentTooLarge(t *testing.T) {
	svc := newUnconfiguredAIService()

	_, err := svc.ExtractProductsFromFile(context.Background(), "stock.csv",
		strings.Repeat("a", maxImportFileSize+1))
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestExtractProductsFileNameTooLong(t *testing.T) {
	svc := newUnconfiguredAIService()

	_, err := svc.ExtractProductsFromFile(context.Background(),
		strings.Repeat("a", maxFileNameLen+1), "rice, 5, kg")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
