package services

import (
	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"gorm.io/gorm"
)

// DashboardData aggregates the counters shown on the admin console
type DashboardData struct {
	TotalOrders   int64          `json:"totalOrders"`
	PendingOrders int64          `json:"pendingOrders"`
	TotalRevenue  float64        `json:"totalRevenue"`
	LowStockItems int            `json:"lowStockItems"`
	RecentOrders  []models.Order `json:"recentOrders"`
	TotalUsers    int64          `json:"totalUsers"`
}

// UserPage is a paginated listing of customer accounts
type UserPage struct {
	Users       []models.User `json:"users"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Total       int64         `json:"total"`
}

// AdminService backs the administrative console
type AdminService interface {
	// Dashboard collects aggregate counts for the admin landing page
	Dashboard() (DashboardData, error)
	// ListUsers returns customer accounts with page/limit pagination
	ListUsers(page, limit int) (UserPage, error)
}

type adminService struct {
	db        *gorm.DB
	inventory InventoryService
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(db *gorm.DB, inventory InventoryService) AdminService {
	return &adminService{db: db, inventory: inventory}
}

func (s *adminService) Dashboard() (DashboardData, error) {
	var data DashboardData

	if err := s.db.Model(&models.Order{}).Count(&data.TotalOrders).Error; err != nil {
		return DashboardData{}, err
	}

	activeStatuses := []string{models.StatusPending, models.StatusPreparing, models.StatusOutForDelivery}
	if err := s.db.Model(&models.Order{}).Where("order_status IN ?", activeStatuses).Count(&data.PendingOrders).Error; err != nil {
		return DashboardData{}, err
	}

	err := s.db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&data.TotalRevenue).Error
	if err != nil {
		return DashboardData{}, err
	}

	lowStock, err := s.inventory.LowStockItems()
	if err != nil {
		return DashboardData{}, err
	}
	data.LowStockItems = len(lowStock)

	if err := s.db.Preload("Items").Order("created_at DESC").Limit(5).Find(&data.RecentOrders).Error; err != nil {
		return DashboardData{}, err
	}

	if err := s.db.Model(&models.User{}).Where("role = ?", "user").Count(&data.TotalUsers).Error; err != nil {
		return DashboardData{}, err
	}

	return data, nil
}

func (s *adminService) ListUsers(page, limit int) (UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := s.db.Model(&models.User{}).Where("role = ?", "user").Count(&total).Error; err != nil {
		return UserPage{}, err
	}

	var users []models.User
	err := s.db.Where("role = ?", "user").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		return UserPage{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return UserPage{Users: users, TotalPages: totalPages, CurrentPage: page, Total: total}, nil
}
