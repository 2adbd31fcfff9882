package models

import "time"

// Brand представляет бренд устройства, к которому подходит запчасть
type Brand string

// Поддерживаемые бренды (контракт сервера, см. каталог Sinari Cell)
const (
	BrandApple     Brand = "APPLE"
	BrandSamsung   Brand = "SAMSUNG"
	BrandXiaomi    Brand = "XIAOMI"
	BrandOppo      Brand = "OPPO"
	BrandVivo      Brand = "VIVO"
	BrandRealme    Brand = "REALME"
	BrandInfinix   Brand = "INFINIX"
	BrandTecno     Brand = "TECNO"
	BrandItel      Brand = "ITEL"
	BrandAsus      Brand = "ASUS"
	BrandHuawei    Brand = "HUAWEI"
	BrandSony      Brand = "SONY"
	BrandGoogle    Brand = "GOOGLE"
	BrandNokia     Brand = "NOKIA"
	BrandLenovo    Brand = "LENOVO"
	BrandUniversal Brand = "UNIVERSAL"
	BrandOther     Brand = "OTHER"
)

// Category представляет категорию товара
type Category string

// Поддерживаемые категории
const (
	CategoryLCD       Category = "LCD"
	CategoryBattery   Category = "BATTERY"
	CategoryConnector Category = "CONNECTOR"
	CategoryFlexible  Category = "FLEXIBLE"
	CategoryCamera    Category = "CAMERA"
	CategorySpeaker   Category = "SPEAKER"
	CategoryBackdoor  Category = "BACKDOOR"
	CategoryGlass     Category = "GLASS"
	CategoryIC        Category = "IC"
	CategoryAccessory Category = "ACCESSORY"
	CategoryOther     Category = "OTHER"
)

// Brands перечисляет все допустимые бренды в порядке отображения
var Brands = []Brand{
	BrandApple, BrandSamsung, BrandXiaomi, BrandOppo, BrandVivo,
	BrandRealme, BrandInfinix, BrandTecno, BrandItel, BrandAsus,
	BrandHuawei, BrandSony, BrandGoogle, BrandNokia, BrandLenovo,
	BrandUniversal, BrandOther,
}

// Categories перечисляет все допустимые категории в порядке отображения
var Categories = []Category{
	CategoryLCD, CategoryBattery, CategoryConnector, CategoryFlexible,
	CategoryCamera, CategorySpeaker, CategoryBackdoor, CategoryGlass,
	CategoryIC, CategoryAccessory, CategoryOther,
}

// Valid проверяет что бренд входит в список поддерживаемых
func (b Brand) Valid() bool {
	for _, known := range Brands {
		if b == known {
			return true
		}
	}
	return false
}

// Valid проверяет что категория входит в список поддерживаемых
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product представляет товар каталога
type Product struct {
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	Brand        Brand     `json:"brand"`
	Category     Category  `json:"category"`
	Price        float64   `json:"price"`
	CostPrice    float64   `json:"cost_price"`
	ID           int64     `json:"id"`
	Stock        int       `json:"stock"`
}
