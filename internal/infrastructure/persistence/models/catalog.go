package models

import (
	"github.com/ikpixels/marketplace/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	Title            string           `gorm:"type:varchar(200);not null"`
	Price            decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Category         catalog.Category `gorm:"type:varchar(20);not null;index"`
	Description      string           `gorm:"type:text"`
	KeyFeatures      string           `gorm:"type:text"`
	TechnologiesUsed string           `gorm:"type:text"`
	DemoURL          string           `gorm:"type:varchar(500)"`
	PreviewGradient  string           `gorm:"type:varchar(50);not null;default:'Purple Blue'"`
	ImageKey         string           `gorm:"type:varchar(500)"`
	FileURL          string           `gorm:"type:varchar(500)"`
	Views            int64            `gorm:"not null;default:0"`
	SoldCount        int64            `gorm:"not null;default:0"`
	Booked           bool             `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToAggregate(),
		Title:             m.Title,
		Price:             m.Price,
		Category:          m.Category,
		Description:       m.Description,
		KeyFeatures:       m.KeyFeatures,
		TechnologiesUsed:  m.TechnologiesUsed,
		DemoURL:           m.DemoURL,
		PreviewGradient:   m.PreviewGradient,
		ImageKey:          m.ImageKey,
		FileURL:           m.FileURL,
		Views:             m.Views,
		SoldCount:         m.SoldCount,
		Booked:            m.Booked,
	}
}

// FromDomain populates the model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.SetAggregate(p.BaseAggregateRoot)
	m.Title = p.Title
	m.Price = p.Price
	m.Category = p.Category
	m.Description = p.Description
	m.KeyFeatures = p.KeyFeatures
	m.TechnologiesUsed = p.TechnologiesUsed
	m.DemoURL = p.DemoURL
	m.PreviewGradient = p.PreviewGradient
	m.ImageKey = p.ImageKey
	m.FileURL = p.FileURL
	m.Views = p.Views
	m.SoldCount = p.SoldCount
	m.Booked = p.Booked
}

// ProductModelFromDomain creates a ProductModel from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// GalleryItemModel is the persistence model for catalog.GalleryItem
type GalleryItemModel struct {
	BaseModel
	Title       string            `gorm:"type:varchar(255);not null"`
	Description string            `gorm:"type:text"`
	MediaKey    string            `gorm:"type:varchar(500)"`
	MediaType   catalog.MediaType `gorm:"type:varchar(10);not null;default:'image'"`
	Active      bool              `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (GalleryItemModel) TableName() string {
	return "gallery_items"
}

// ToDomain converts the model to a gallery item
func (m *GalleryItemModel) ToDomain() *catalog.GalleryItem {
	return &catalog.GalleryItem{
		BaseEntity:  m.ToEntity(),
		Title:       m.Title,
		Description: m.Description,
		MediaKey:    m.MediaKey,
		MediaType:   m.MediaType,
		Active:      m.Active,
	}
}

// GalleryItemModelFromDomain creates a model from a gallery item
func GalleryItemModelFromDomain(g *catalog.GalleryItem) *GalleryItemModel {
	m := &GalleryItemModel{
		Title:       g.Title,
		Description: g.Description,
		MediaKey:    g.MediaKey,
		MediaType:   g.MediaType,
		Active:      g.Active,
	}
	m.SetEntity(g.BaseEntity)
	return m
}
