package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// 顯示用精度, 真正金額一律由伺服器以菜單價格重算
const displayPlaces int32 = 2

type Item struct {
	MenuItemID string
	Name       string
	Image      string
	// 價格快照, 僅供顯示
	Price decimal.Decimal
}

type Line struct {
	Item
	Quantity int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CheckoutItem 送往結帳的內容, 不帶價格
type CheckoutItem struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantityRequested"`
}

// Cart 由呼叫端持有的購物車狀態, 不做任何網路呼叫
type Cart struct {
	mu    sync.RWMutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(menuItemID string) int {
	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}

// Add 已存在的品項數量加一, 否則以數量 1 加入
func (c *Cart) Add(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(item.MenuItemID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

func (c *Cart) IncrementQuantity(menuItemID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(menuItemID)
	if i < 0 {
		return false
	}
	c.lines[i].Quantity++
	return true
}

// DecrementQuantity 數量最低為 1, 要移除請用 Remove
func (c *Cart) DecrementQuantity(menuItemID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(menuItemID)
	if i < 0 {
		return false
	}
	if c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
	}
	return true
}

func (c *Cart) Remove(menuItemID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(menuItemID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Total 未四捨五入的總額
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// DisplayTotal 顯示時才四捨五入到貨幣精度
func (c *Cart) DisplayTotal() string {
	return c.Total().StringFixed(displayPlaces)
}

func (c *Cart) CheckoutItems() []CheckoutItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]CheckoutItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, CheckoutItem{MenuItemID: l.MenuItemID, Quantity: l.Quantity})
	}
	return items
}
