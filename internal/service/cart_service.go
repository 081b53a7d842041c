package service

import (
	"context"
	"strings"

	"github.com/webild-pos/internal/cache"
	"github.com/webild-pos/internal/cart"
	"github.com/webild-pos/internal/catalog"
	"github.com/webild-pos/internal/constants"
	"github.com/webild-pos/internal/logger"
	"github.com/webild-pos/internal/models"
	"github.com/webild-pos/internal/order"
	"github.com/webild-pos/internal/pricing"
)

// CartLineView 购物车行（用于响应）
type CartLineView struct {
	ID            string       `json:"id"`
	ProductID     string       `json:"product_id"`
	Name          string       `json:"name"`
	ImageURL      string       `json:"image_url,omitempty"`
	Quantity      int          `json:"qty"`
	ModifierIDs   []string     `json:"mods"`
	ModifierNames []string     `json:"modifier_names"`
	UnitPrice     models.Money `json:"unit_price"`
	Subtotal      models.Money `json:"subtotal"`
}

// CartView 购物车视图
type CartView struct {
	SessionID     string         `json:"session_id"`
	StoreSlug     string         `json:"store_slug"`
	Lines         []CartLineView `json:"lines"`
	Count         int            `json:"count"`
	Subtotal      models.Money   `json:"subtotal"`
	SubtotalLocal models.Money   `json:"subtotal_local"`
	Rate          string         `json:"rate"`
	CheckoutOpen  bool           `json:"checkout_open"`
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	StoreSlug   string
	SessionID   string
	ProductID   string
	Quantity    int
	ModifierIDs []string
}

// CartService 会话购物车服务
type CartService struct {
	catalog  *CatalogService
	sessions cache.SessionStore
}

// NewCartService 创建购物车服务
func NewCartService(catalogService *CatalogService, sessions cache.SessionStore) *CartService {
	return &CartService{catalog: catalogService, sessions: sessions}
}

// Get 获取当前购物车
func (s *CartService) Get(ctx context.Context, slug, sessionID string) (*CartView, error) {
	snapshot, err := s.catalog.LoadSnapshot(ctx, slug)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(sessionID) == "" {
		return buildCartView(snapshot, "", cart.NewEngine(snapshot)), nil
	}
	session, err := s.sessions.Load(ctx, snapshot.Store.Slug, sessionID)
	if err != nil {
		return nil, err
	}
	engine := cart.NewEngine(snapshot)
	if session != nil {
		engine = cart.Restore(session.Cart, snapshot)
	}
	return buildCartView(snapshot, sessionID, engine), nil
}

// AddItem 加入购物车；同一商品与加料组合合并数量
func (s *CartService) AddItem(ctx context.Context, input AddCartItemInput) (*CartView, error) {
	if strings.TrimSpace(input.SessionID) == "" {
		return nil, ErrSessionRequired
	}
	if input.Quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}
	if input.Quantity > constants.MaxCartLineQuantity {
		return nil, ErrQuantityTooLarge
	}
	snapshot, err := s.catalog.LoadSnapshot(ctx, input.StoreSlug)
	if err != nil {
		return nil, err
	}
	product, ok := snapshot.Product(strings.TrimSpace(input.ProductID))
	if !ok {
		return nil, ErrProductNotAvailable
	}
	modifierIDs := cart.CanonicalModifiers(input.ModifierIDs)
	for _, id := range modifierIDs {
		if !product.AllowsModifier(id) {
			return nil, ErrModifierNotAllowed
		}
		if _, ok := snapshot.LookupModifier(id); !ok {
			return nil, ErrModifierNotAllowed
		}
	}

	var added cart.LineItem
	session, err := s.mutate(ctx, snapshot, input.SessionID, func(engine *cart.Engine) error {
		key := cart.LineKey(product.ID, modifierIDs)
		if existing, found := engine.Line(key); found {
			if existing.Quantity+input.Quantity > constants.MaxCartLineQuantity {
				return ErrQuantityTooLarge
			}
		} else if len(engine.Lines()) >= constants.MaxCartLines {
			return ErrCartFull
		}
		line, err := engine.AddLine(product, input.Quantity, modifierIDs)
		added = line
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Infow("cart_line_added",
		"store_slug", snapshot.Store.Slug,
		"line_id", added.ID,
		"qty", added.Quantity,
	)
	return buildCartView(snapshot, input.SessionID, cart.Restore(session.Cart, snapshot)), nil
}

// UpdateItem 设置行数量；数量 <= 0 时移除该行
func (s *CartService) UpdateItem(ctx context.Context, slug, sessionID, lineID string, quantity int) (*CartView, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	if quantity > constants.MaxCartLineQuantity {
		return nil, ErrQuantityTooLarge
	}
	snapshot, err := s.catalog.LoadSnapshot(ctx, slug)
	if err != nil {
		return nil, err
	}
	session, err := s.mutate(ctx, snapshot, sessionID, func(engine *cart.Engine) error {
		if !engine.UpdateQuantity(lineID, quantity) {
			return ErrLineNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buildCartView(snapshot, sessionID, cart.Restore(session.Cart, snapshot)), nil
}

// RemoveItem 移除购物车行；行不存在时不报错
func (s *CartService) RemoveItem(ctx context.Context, slug, sessionID, lineID string) (*CartView, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	snapshot, err := s.catalog.LoadSnapshot(ctx, slug)
	if err != nil {
		return nil, err
	}
	session, err := s.mutate(ctx, snapshot, sessionID, func(engine *cart.Engine) error {
		engine.RemoveLine(lineID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buildCartView(snapshot, sessionID, cart.Restore(session.Cart, snapshot)), nil
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, slug, sessionID string) (*CartView, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	snapshot, err := s.catalog.LoadSnapshot(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Delete(ctx, snapshot.Store.Slug, sessionID); err != nil {
		return nil, err
	}
	return buildCartView(snapshot, sessionID, cart.NewEngine(snapshot)), nil
}

// OpenCheckout 打开结账页；空购物车不可打开
func (s *CartService) OpenCheckout(ctx context.Context, slug, sessionID string) (*CartView, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	snapshot, err := s.catalog.LoadSnapshot(ctx, slug)
	if err != nil {
		return nil, err
	}
	current, err := s.sessions.Load(ctx, snapshot.Store.Slug, sessionID)
	if err != nil {
		return nil, err
	}
	if current == nil || len(current.Cart.Lines) == 0 {
		return nil, ErrCartEmpty
	}
	session, err := s.mutate(ctx, snapshot, sessionID, func(engine *cart.Engine) error {
		return engine.OpenCheckout()
	})
	if err != nil {
		return nil, err
	}
	return buildCartView(snapshot, sessionID, cart.Restore(session.Cart, snapshot)), nil
}

// CloseCheckout 关闭结账页，不影响购物车内容
func (s *CartService) CloseCheckout(ctx context.Context, slug, sessionID string) (*CartView, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	snapshot, err := s.catalog.LoadSnapshot(ctx, slug)
	if err != nil {
		return nil, err
	}
	current, err := s.sessions.Load(ctx, snapshot.Store.Slug, sessionID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return buildCartView(snapshot, sessionID, cart.NewEngine(snapshot)), nil
	}
	session, err := s.mutate(ctx, snapshot, sessionID, func(engine *cart.Engine) error {
		engine.CloseCheckout()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buildCartView(snapshot, sessionID, cart.Restore(session.Cart, snapshot)), nil
}

func (s *CartService) mutate(ctx context.Context, snapshot *catalog.Snapshot, sessionID string, fn func(*cart.Engine) error) (*cache.CartSession, error) {
	slug := snapshot.Store.Slug
	return s.sessions.Update(ctx, slug, sessionID, func(session *cache.CartSession) error {
		engine := cart.Restore(session.Cart, snapshot)
		if err := fn(engine); err != nil {
			return err
		}
		session.Cart = engine.Export(slug)
		return nil
	})
}

func buildCartView(snapshot *catalog.Snapshot, sessionID string, engine *cart.Engine) *CartView {
	lines := engine.Lines()
	views := make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		names := order.ModifierNames(line.ModifierIDs, snapshot)
		if names == nil {
			names = []string{}
		}
		mods := line.ModifierIDs
		if mods == nil {
			mods = []string{}
		}
		views = append(views, CartLineView{
			ID:            line.ID,
			ProductID:     line.Product.ID,
			Name:          line.Product.Name,
			ImageURL:      line.Product.ImageURL,
			Quantity:      line.Quantity,
			ModifierIDs:   mods,
			ModifierNames: names,
			UnitPrice:     models.NewMoney(line.UnitPrice),
			Subtotal:      models.NewMoney(line.Subtotal()),
		})
	}
	primary, local := pricing.DualCurrencyTotal(engine.Subtotal(), snapshot.Store.Rate)
	return &CartView{
		SessionID:     sessionID,
		StoreSlug:     snapshot.Store.Slug,
		Lines:         views,
		Count:         engine.Count(),
		Subtotal:      models.NewMoney(primary),
		SubtotalLocal: models.NewMoney(local),
		Rate:          pricing.FormatRate(snapshot.Store.Rate),
		CheckoutOpen:  engine.CheckoutOpen(),
	}
}
