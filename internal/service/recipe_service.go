package service

import (
	"errors"
	"strings"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/queue"
	"github.com/foodgram-next/internal/repository"
)

const recipeImageCleanupDelay = time.Minute

// 菜谱修改动作，对应 RBAC 中的 HTTP 方法
const (
	RecipeActionUpdate = "PATCH"
	RecipeActionDelete = "DELETE"

	recipeObject = "/recipes/:id"
)

// RecipeAccessPolicy 菜谱修改授权判断
type RecipeAccessPolicy interface {
	EnforceUser(userID uint, obj, act string) (bool, error)
}

// ImageStore 图片存储能力
type ImageStore interface {
	SaveBase64Image(dataURI, scene string) (string, error)
	RemoveFile(publicPath string) error
}

// RecipeImageCleanupQueue 图片清理任务投递能力
type RecipeImageCleanupQueue interface {
	Enabled() bool
	EnqueueRecipeImageCleanup(payload queue.RecipeImageCleanupPayload, delay time.Duration) error
}

// RecipeIngredientInput 菜谱食材用量输入
type RecipeIngredientInput struct {
	ID     uint
	Amount int
}

// RecipeInput 菜谱写入参数
type RecipeInput struct {
	Name        string
	Image       string // data URI；更新时为空表示保留原图
	Text        string
	CookingTime int
	Tags        []uint
	Ingredients []RecipeIngredientInput
}

// RecipeView 菜谱及当前访问者的收藏/购物清单状态
type RecipeView struct {
	Recipe             models.Recipe
	AuthorIsSubscribed bool
	IsFavorited        bool
	IsInShoppingCart   bool
}

// RecipeService 菜谱服务
type RecipeService struct {
	cfg              *config.Config
	recipeRepo       repository.RecipeRepository
	tagRepo          repository.TagRepository
	ingredientRepo   repository.IngredientRepository
	favoriteRepo     repository.RecipeRelationRepository
	cartRepo         repository.RecipeRelationRepository
	subscriptionRepo repository.SubscriptionRepository
	images           ImageStore
	cleanupQueue     RecipeImageCleanupQueue
	policy           RecipeAccessPolicy
}

// RecipeServiceOptions 菜谱服务依赖
type RecipeServiceOptions struct {
	Config           *config.Config
	RecipeRepo       repository.RecipeRepository
	TagRepo          repository.TagRepository
	IngredientRepo   repository.IngredientRepository
	FavoriteRepo     repository.RecipeRelationRepository
	CartRepo         repository.RecipeRelationRepository
	SubscriptionRepo repository.SubscriptionRepository
	Images           ImageStore
	CleanupQueue     RecipeImageCleanupQueue
	Policy           RecipeAccessPolicy
}

// NewRecipeService 创建菜谱服务
func NewRecipeService(opts RecipeServiceOptions) *RecipeService {
	return &RecipeService{
		cfg:              opts.Config,
		recipeRepo:       opts.RecipeRepo,
		tagRepo:          opts.TagRepo,
		ingredientRepo:   opts.IngredientRepo,
		favoriteRepo:     opts.FavoriteRepo,
		cartRepo:         opts.CartRepo,
		subscriptionRepo: opts.SubscriptionRepo,
		images:           opts.Images,
		cleanupQueue:     opts.CleanupQueue,
		policy:           opts.Policy,
	}
}

// Get 获取菜谱详情，viewerID 为 0 表示匿名访问
func (s *RecipeService) Get(viewerID, id uint) (*RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	views, err := s.decorate(viewerID, []models.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List 菜谱列表；匿名访问时忽略收藏与购物清单筛选
func (s *RecipeService) List(viewerID uint, filter repository.RecipeListFilter) ([]RecipeView, int64, error) {
	if viewerID == 0 {
		filter.FavoritedBy = 0
		filter.InCartOf = 0
	}
	recipes, total, err := s.recipeRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.decorate(viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Create 创建菜谱
func (s *RecipeService) Create(authorID uint, input RecipeInput) (*RecipeView, error) {
	if authorID == 0 {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(input.Image) == "" {
		return nil, ErrRecipeImageRequired
	}
	items, tagIDs, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}
	imagePath, err := s.saveImage(input.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(input.Name),
		Image:       imagePath,
		Text:        strings.TrimSpace(input.Text),
		CookingTime: input.CookingTime,
		PubDate:     time.Now(),
	}
	if err := s.recipeRepo.Create(recipe, tagIDs, items); err != nil {
		s.discardImage(imagePath)
		return nil, err
	}
	logger.Infow("recipe_created", "recipe_id", recipe.ID, "author_id", authorID)
	return s.Get(authorID, recipe.ID)
}

// Update 更新菜谱，仅作者或拥有授权的员工可操作
func (s *RecipeService) Update(actorID, id uint, input RecipeInput) (*RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	if err := s.authorize(actorID, recipe, RecipeActionUpdate); err != nil {
		return nil, err
	}
	items, tagIDs, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	oldImage := recipe.Image
	newImage := ""
	if strings.TrimSpace(input.Image) != "" {
		newImage, err = s.saveImage(input.Image)
		if err != nil {
			return nil, err
		}
		recipe.Image = newImage
	}
	recipe.Name = strings.TrimSpace(input.Name)
	recipe.Text = strings.TrimSpace(input.Text)
	recipe.CookingTime = input.CookingTime

	if err := s.recipeRepo.Update(recipe, tagIDs, items); err != nil {
		if newImage != "" {
			s.discardImage(newImage)
		}
		return nil, err
	}
	if newImage != "" && oldImage != "" && oldImage != newImage {
		s.scheduleImageCleanup(oldImage)
	}
	logger.Infow("recipe_updated", "recipe_id", recipe.ID, "actor_id", actorID)
	return s.Get(actorID, recipe.ID)
}

// Delete 删除菜谱，同时清理收藏、购物清单与图片
func (s *RecipeService) Delete(actorID, id uint) error {
	recipe, err := s.recipeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return ErrRecipeNotFound
	}
	if err := s.authorize(actorID, recipe, RecipeActionDelete); err != nil {
		return err
	}
	if err := s.recipeRepo.Delete(recipe.ID); err != nil {
		return err
	}
	if recipe.Image != "" {
		s.scheduleImageCleanup(recipe.Image)
	}
	logger.Infow("recipe_deleted", "recipe_id", recipe.ID, "actor_id", actorID)
	return nil
}

// CanModify 判断用户是否可修改菜谱
func (s *RecipeService) CanModify(actorID uint, recipe *models.Recipe, action string) (bool, error) {
	if actorID == 0 || recipe == nil {
		return false, nil
	}
	if recipe.AuthorID == actorID {
		return true, nil
	}
	if s.policy == nil {
		return false, nil
	}
	return s.policy.EnforceUser(actorID, recipeObject, action)
}

func (s *RecipeService) authorize(actorID uint, recipe *models.Recipe, action string) error {
	allowed, err := s.CanModify(actorID, recipe, action)
	if err != nil {
		logger.Errorw("recipe_authorize_failed", "recipe_id", recipe.ID, "actor_id", actorID, "error", err)
		return ErrRecipeForbidden
	}
	if !allowed {
		return ErrRecipeForbidden
	}
	return nil
}

func (s *RecipeService) validateInput(input RecipeInput) ([]models.RecipeIngredient, []uint, error) {
	limits := s.cfg.Recipe
	minValue := limits.MinValue
	if minValue <= 0 {
		minValue = 1
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || (limits.NameMaxLength > 0 && len([]rune(name)) > limits.NameMaxLength) {
		return nil, nil, ErrRecipeNameInvalid
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, nil, ErrRecipeTextRequired
	}
	if input.CookingTime < minValue || (limits.MaxCookingTime > 0 && input.CookingTime > limits.MaxCookingTime) {
		return nil, nil, ErrRecipeCookingTimeOutOfRange
	}

	if len(input.Ingredients) == 0 {
		return nil, nil, ErrRecipeIngredientsRequired
	}
	seenIngredients := make(map[uint]struct{}, len(input.Ingredients))
	ingredientIDs := make([]uint, 0, len(input.Ingredients))
	items := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if _, ok := seenIngredients[item.ID]; ok {
			return nil, nil, ErrRecipeDuplicateIngredient
		}
		seenIngredients[item.ID] = struct{}{}
		if item.Amount < minValue || (limits.MaxIngredientAmount > 0 && item.Amount > limits.MaxIngredientAmount) {
			return nil, nil, ErrRecipeAmountOutOfRange
		}
		ingredientIDs = append(ingredientIDs, item.ID)
		items = append(items, models.RecipeIngredient{IngredientID: item.ID, Amount: item.Amount})
	}
	found, err := s.ingredientRepo.ListByIDs(ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(found) != len(ingredientIDs) {
		return nil, nil, ErrIngredientNotFound
	}

	if len(input.Tags) == 0 {
		return nil, nil, ErrRecipeTagsRequired
	}
	seenTags := make(map[uint]struct{}, len(input.Tags))
	for _, tagID := range input.Tags {
		if _, ok := seenTags[tagID]; ok {
			return nil, nil, ErrRecipeDuplicateTag
		}
		seenTags[tagID] = struct{}{}
	}
	tags, err := s.tagRepo.ListByIDs(input.Tags)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(input.Tags) {
		return nil, nil, ErrTagNotFound
	}
	return items, input.Tags, nil
}

func (s *RecipeService) decorate(viewerID uint, recipes []models.Recipe) ([]RecipeView, error) {
	views := make([]RecipeView, 0, len(recipes))
	if viewerID == 0 || len(recipes) == 0 {
		for _, recipe := range recipes {
			views = append(views, RecipeView{Recipe: recipe})
		}
		return views, nil
	}

	ids := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID)
		authorIDs = append(authorIDs, recipe.AuthorID)
	}
	favorited, err := s.favoriteRepo.ContainedRecipeIDs(viewerID, ids)
	if err != nil {
		return nil, err
	}
	inCart, err := s.cartRepo.ContainedRecipeIDs(viewerID, ids)
	if err != nil {
		return nil, err
	}
	subscribed := map[uint]bool{}
	if s.subscriptionRepo != nil {
		subscribed, err = s.subscriptionRepo.SubscribedAuthorIDs(viewerID, authorIDs)
		if err != nil {
			return nil, err
		}
	}
	for _, recipe := range recipes {
		views = append(views, RecipeView{
			Recipe:             recipe,
			AuthorIsSubscribed: subscribed[recipe.AuthorID],
			IsFavorited:        favorited[recipe.ID],
			IsInShoppingCart:   inCart[recipe.ID],
		})
	}
	return views, nil
}

func (s *RecipeService) saveImage(dataURI string) (string, error) {
	if s.images == nil {
		return "", ErrRecipeImageInvalid
	}
	path, err := s.images.SaveBase64Image(dataURI, constants.UploadSceneRecipeImage)
	switch {
	case errors.Is(err, ErrUploadRejected):
		logger.Debugw("recipe_image_rejected", "error", err)
		return "", ErrRecipeImageInvalid
	case err != nil:
		logger.Errorw("recipe_image_save_failed", "error", err)
		return "", err
	}
	return path, nil
}

func (s *RecipeService) discardImage(path string) {
	if s.images == nil || path == "" {
		return
	}
	if err := s.images.RemoveFile(path); err != nil {
		logger.Warnw("recipe_image_discard_failed", "path", path, "error", err)
	}
}

// scheduleImageCleanup 优先交给队列延迟删除，队列不可用时同步删除
func (s *RecipeService) scheduleImageCleanup(path string) {
	if s.cleanupQueue != nil && s.cleanupQueue.Enabled() {
		err := s.cleanupQueue.EnqueueRecipeImageCleanup(queue.RecipeImageCleanupPayload{Paths: []string{path}}, recipeImageCleanupDelay)
		if err == nil {
			return
		}
		logger.Warnw("recipe_image_cleanup_enqueue_failed", "path", path, "error", err)
	}
	s.discardImage(path)
}
