package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/middleware"
)

func newImageRouter(t *testing.T, reports *MockImageReportUseCase, updates *MockImageUpdateUseCase, identity *model.Identity) *gin.Engine {
	logger := zaptest.NewLogger(t)
	rh := NewImageReportHandler(reports, logger)
	uh := NewImageUpdateHandler(updates, logger)

	router := gin.New()
	router.Use(withIdentity(identity))
	router.POST("/image-reports/candidates", rh.PostFindCandidates)
	router.POST("/image-reports", rh.PostImageReport)
	router.GET("/admin/image-reports", rh.GetImageReports)
	router.POST("/admin/image-reports/:id/resolve", rh.PostResolveImageReport)
	router.POST("/admin/images/count", uh.PostCountCandidates)
	router.POST("/admin/images/propose", uh.PostProposeUpdates)
	router.POST("/admin/images/confirm", uh.PostConfirmUpdates)
	return router
}

func TestImageReportHandler(t *testing.T) {
	t.Run("候補検索", func(t *testing.T) {
		reports := new(MockImageReportUseCase)
		reports.On("FindCandidates", mock.Anything, &model.FindImageCandidatesRequest{
			SpotName: "Example Cafe", ReportedImage: "https://example.com/wrong.jpg",
		}).Return([]model.ImageCandidate{{URL: "https://example.com/a.jpg", Verified: true}}, nil)

		w := doJSON(t, newImageRouter(t, reports, new(MockImageUpdateUseCase), testUser), http.MethodPost,
			"/image-reports/candidates", `{"spotName":"Example Cafe","reportedImage":"https://example.com/wrong.jpg"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var got struct {
			Candidates []model.ImageCandidate `json:"candidates"`
		}
		decodeBody(t, w, &got)
		assert.Len(t, got.Candidates, 1)
		assert.True(t, got.Candidates[0].Verified)
	})

	t.Run("報告の送信", func(t *testing.T) {
		reports := new(MockImageReportUseCase)
		reports.On("Submit", mock.Anything, testUser, mock.MatchedBy(func(r *model.SubmitImageReportRequest) bool {
			return r.SpotName == "Example Cafe" && r.CandidateImage == "https://example.com/a.jpg"
		})).Return(&model.ImageReport{ID: "rep-1"}, nil)

		w := doJSON(t, newImageRouter(t, reports, new(MockImageUpdateUseCase), testUser), http.MethodPost, "/image-reports", `{
			"region":"Tokyo","spotName":"Example Cafe","reportedImage":"https://example.com/wrong.jpg",
			"candidateImage":"https://example.com/a.jpg"
		}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		reports.AssertExpectations(t)
	})

	t.Run("報告画像なしは400", func(t *testing.T) {
		reports := new(MockImageReportUseCase)
		w := doJSON(t, newImageRouter(t, reports, new(MockImageUpdateUseCase), testUser), http.MethodPost, "/image-reports",
			`{"region":"Tokyo","spotName":"Example Cafe"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp middleware.ErrorResponse
		decodeBody(t, w, &resp)
		assert.Contains(t, resp.Message, "reportedImage")
	})

	t.Run("解決", func(t *testing.T) {
		reports := new(MockImageReportUseCase)
		reports.On("Resolve", mock.Anything, testAdmin, "rep-1", &model.ResolveImageReportRequest{
			Approve: true, ImageURL: "https://example.com/a.jpg",
		}).Return(nil)

		w := doJSON(t, newImageRouter(t, reports, new(MockImageUpdateUseCase), testAdmin), http.MethodPost,
			"/admin/image-reports/rep-1/resolve", `{"approve":true,"imageUrl":"https://example.com/a.jpg"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		reports.AssertExpectations(t)
	})

	t.Run("一覧の失敗は500", func(t *testing.T) {
		reports := new(MockImageReportUseCase)
		reports.On("List", mock.Anything).Return(nil, errors.New("firestore unavailable"))

		w := doJSON(t, newImageRouter(t, reports, new(MockImageUpdateUseCase), testAdmin), http.MethodGet, "/admin/image-reports", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "firestore")
	})
}

func TestImageUpdateHandler(t *testing.T) {
	t.Run("ボディなしは全地域", func(t *testing.T) {
		updates := new(MockImageUpdateUseCase)
		updates.On("CountCandidates", mock.Anything, "").
			Return(&model.ImageUpdateCountResult{Counts: map[string]int{"Tokyo": 2, "Osaka": 0}, Total: 2}, nil)

		w := doJSON(t, newImageRouter(t, new(MockImageReportUseCase), updates, testAdmin), http.MethodPost, "/admin/images/count", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got model.ImageUpdateCountResult
		decodeBody(t, w, &got)
		assert.Equal(t, 2, got.Total)
	})

	t.Run("地域を指定して提案", func(t *testing.T) {
		updates := new(MockImageUpdateUseCase)
		updates.On("ProposeUpdates", mock.Anything, "Tokyo").
			Return(&model.ImageUpdateProposalResult{Proposals: []model.ImageUpdateProposal{{Region: "Tokyo", SpotName: "Example Cafe"}}}, nil)

		w := doJSON(t, newImageRouter(t, new(MockImageReportUseCase), updates, testAdmin), http.MethodPost, "/admin/images/propose", `{"region":"Tokyo"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		updates.AssertExpectations(t)
	})

	t.Run("チャンク転送でも地域指定を読む", func(t *testing.T) {
		updates := new(MockImageUpdateUseCase)
		updates.On("ProposeUpdates", mock.Anything, "Tokyo").
			Return(&model.ImageUpdateProposalResult{}, nil)

		w := doChunked(t, newImageRouter(t, new(MockImageReportUseCase), updates, testAdmin), http.MethodPost, "/admin/images/propose", `{"region":"Tokyo"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		updates.AssertExpectations(t)
	})

	t.Run("空のチャンク転送は全地域", func(t *testing.T) {
		updates := new(MockImageUpdateUseCase)
		updates.On("CountCandidates", mock.Anything, "").
			Return(&model.ImageUpdateCountResult{Counts: map[string]int{}}, nil)

		w := doChunked(t, newImageRouter(t, new(MockImageReportUseCase), updates, testAdmin), http.MethodPost, "/admin/images/count", "")

		assert.Equal(t, http.StatusOK, w.Code)
		updates.AssertExpectations(t)
	})

	t.Run("チャンク転送の壊れたJSONは400", func(t *testing.T) {
		updates := new(MockImageUpdateUseCase)
		w := doChunked(t, newImageRouter(t, new(MockImageReportUseCase), updates, testAdmin), http.MethodPost, "/admin/images/count", `{"region":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		updates.AssertNotCalled(t, "CountCandidates", mock.Anything, mock.Anything)
	})

	t.Run("反映", func(t *testing.T) {
		updates := new(MockImageUpdateUseCase)
		updates.On("ConfirmUpdates", mock.Anything, testAdmin, []model.ImageUpdateProposal{
			{Region: "Tokyo", SpotName: "Example Cafe", NewImage: "https://example.com/a.jpg"},
		}).Return(&model.ImageUpdateConfirmResult{UpdatedDocuments: 1, UpdatedSpots: 1, UpdatedRegions: []string{"Tokyo"}}, nil)

		w := doJSON(t, newImageRouter(t, new(MockImageReportUseCase), updates, testAdmin), http.MethodPost, "/admin/images/confirm",
			`{"updates":[{"region":"Tokyo","spotName":"Example Cafe","newImage":"https://example.com/a.jpg"}]}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var got model.ImageUpdateConfirmResult
		decodeBody(t, w, &got)
		assert.Equal(t, 1, got.UpdatedDocuments)
		updates.AssertExpectations(t)
	})

	t.Run("新画像なしの提案は400", func(t *testing.T) {
		updates := new(MockImageUpdateUseCase)
		w := doJSON(t, newImageRouter(t, new(MockImageReportUseCase), updates, testAdmin), http.MethodPost, "/admin/images/confirm",
			`{"updates":[{"region":"Tokyo","spotName":"Example Cafe"}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		updates.AssertNotCalled(t, "ConfirmUpdates", mock.Anything, mock.Anything, mock.Anything)
	})
}
