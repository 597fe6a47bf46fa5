package repository

import "time"

// ProductListFilter 商品列表过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Search     string
	OnlyActive bool
}

// ServiceListFilter 服务列表过滤条件
type ServiceListFilter struct {
	Page       int
	PageSize   int
	Category   string
	OnlyActive bool
}

// PuppyListFilter 幼犬列表过滤条件
type PuppyListFilter struct {
	Page           int
	PageSize       int
	Breed          string
	Search         string
	OnlyAvailable  bool
	OnlyBestSeller bool
}

// OrderListFilter 订单列表过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// BookingListFilter 预约列表过滤条件
type BookingListFilter struct {
	Page     int
	PageSize int
	UserID   uint
	Status   string
}

// AuthEventListFilter 认证审计过滤条件
type AuthEventListFilter struct {
	Page        int
	PageSize    int
	ActorType   string
	ActorID     uint
	Identifier  string
	Event       string
	Result      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
