package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

const generatedPlanName = "for the week"

type PlanHandler struct {
	planService     service.IPlanService
	authService     middleware.TokenValidator
	generateLimiter *middleware.RateLimiter
}

func NewPlanHandler(planService service.IPlanService, authService middleware.TokenValidator, generateLimiter *middleware.RateLimiter) *PlanHandler {
	return &PlanHandler{
		planService:     planService,
		authService:     authService,
		generateLimiter: generateLimiter,
	}
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	requireAuth := middleware.AuthMiddleware(h.authService)

	router.GET("/planner", requireAuth, h.generateLimiter.RateLimitMiddleware(), h.GeneratePlan)

	plans := router.Group("/plans")
	{
		plans.POST("", requireAuth, h.SavePlan)
		plans.GET("/mine", requireAuth, h.ListMyPlans)
		plans.GET("/:id", h.GetPlan)
	}
}

// planName labels a saved plan by id and creation date.
func planName(p *models.MealPlan) string {
	return fmt.Sprintf("%s - %s", p.ID, p.CreatedAt.Format("01 02, 2006"))
}

func slotView(recipes map[models.Slot]*models.Recipe) gin.H {
	view := gin.H{}
	for _, slot := range models.Slots {
		view[string(slot)] = recipes[slot]
	}
	return view
}

// GeneratePlan draws a fresh plan that the caller may then save.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	plan, err := h.planService.GeneratePlan(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	view := slotView(plan.Slots())
	view["ingredients"] = plan.Ingredients
	view["enable_save"] = true
	view["plan_name"] = generatedPlanName
	c.JSON(http.StatusOK, view)
}

func (h *PlanHandler) SavePlan(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req types.SavePlanRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	slots, err := service.SlotsFromRequest(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.planService.SavePlan(c.Request.Context(), userID, slots); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, BasePath+"/plans/mine")
}

func (h *PlanHandler) ListMyPlans(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	plans, err := h.planService.ListUserPlans(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(plans))
	for _, p := range plans {
		out = append(out, gin.H{"id": p.ID, "name": planName(p), "date": p.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"meal_plans": out})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	details, err := h.planService.GetPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	recipes := make(map[models.Slot]*models.Recipe, len(models.Slots))
	for _, slot := range models.Slots {
		recipes[slot] = details.Plan.Recipe(slot)
	}
	view := slotView(recipes)
	view["ingredients"] = details.Ingredients
	view["enable_save"] = false
	view["plan_name"] = planName(details.Plan)
	c.JSON(http.StatusOK, view)
}
