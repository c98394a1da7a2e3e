package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/service"
)

type fakeAssessmentHistory struct {
	records []domain.AssessmentRecord
}

func (f *fakeAssessmentHistory) Create(_ context.Context, record domain.AssessmentRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAssessmentHistory) LatestByUserID(_ context.Context, _ string) (domain.AssessmentRecord, error) {
	if len(f.records) == 0 {
		return domain.AssessmentRecord{}, pgx.ErrNoRows
	}
	return f.records[len(f.records)-1], nil
}

func (f *fakeAssessmentHistory) ListByUserID(_ context.Context, _ string, _ int) ([]domain.AssessmentRecord, error) {
	return f.records, nil
}

func newDietTestRouter(t *testing.T, users *mockUserRepo, assessments *fakeAssessmentHistory) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := service.NewJWTService("secret", 15*time.Minute, 30*time.Minute)
	handler := NewDietHandler(zap.NewNop(), service.NewDietService(zap.NewNop(), users, assessments))

	r := gin.New()
	protected := r.Group("/", JWTAuthMiddleware(jwtSvc))
	protected.GET("/diet", handler.GetPlan)
	return r, newAuthToken(t, jwtSvc, "user-1")
}

func TestDietHandler_GetPlan(t *testing.T) {
	users := newMockUserRepo()
	_ = users.Create(context.Background(), domain.User{
		ID:       "user-1",
		Email:    "ana@example.com",
		HeightCm: 170,
		WeightKg: 58,
	})
	assessments := &fakeAssessmentHistory{records: []domain.AssessmentRecord{
		{ID: "a1", UserID: "user-1", PrimaryStage: domain.StageDepression},
	}}
	r, token := newDietTestRouter(t, users, assessments)

	res := doJSON(r, http.MethodGet, "/diet", token, nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	var resp service.DietRecommendation
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.BMIBand != domain.BMIBandNormal || resp.Stage != "depression" {
		t.Fatalf("unexpected recommendation: %+v", resp)
	}
	if resp.Plan.Title == "" || len(resp.Plan.Meals) == 0 {
		t.Fatalf("expected a populated plan, got %+v", resp.Plan)
	}
}

func TestDietHandler_ProfileIncomplete(t *testing.T) {
	users := newMockUserRepo()
	_ = users.Create(context.Background(), domain.User{ID: "user-1", Email: "ana@example.com"})
	r, token := newDietTestRouter(t, users, &fakeAssessmentHistory{})

	res := doJSON(r, http.MethodGet, "/diet", token, nil)
	if res.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412, got %d: %s", res.Code, res.Body.String())
	}
}
