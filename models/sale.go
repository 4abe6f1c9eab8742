package models

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Number is a coerced numeric field. Values that failed coercion are NaN and
// serialize as JSON null.
type Number float64

// IsValid reports whether n holds a real number.
func (n Number) IsValid() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.IsValid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = Number(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// SaleRecord is one row of the sales dataset. Date is nil when the source
// value could not be read as a timestamp.
type SaleRecord struct {
	TransactionID Number     `json:"transactionId"`
	Date          *time.Time `json:"date"`

	CustomerID     string `json:"customerId"`
	CustomerName   string `json:"customerName"`
	PhoneNumber    Number `json:"phoneNumber"`
	Gender         string `json:"gender"`
	Age            Number `json:"age"`
	CustomerRegion string `json:"customerRegion"`
	CustomerType   string `json:"customerType"`

	ProductID       string `json:"productId"`
	ProductName     string `json:"productName"`
	Brand           string `json:"brand"`
	ProductCategory string `json:"productCategory"`
	Tags            string `json:"tags"`

	Quantity           Number `json:"quantity"`
	PricePerUnit       Number `json:"pricePerUnit"`
	DiscountPercentage Number `json:"discountPercentage"`
	TotalAmount        Number `json:"totalAmount"`
	FinalAmount        Number `json:"finalAmount"`

	PaymentMethod string `json:"paymentMethod"`
	OrderStatus   string `json:"orderStatus"`
	DeliveryType  string `json:"deliveryType"`

	StoreID       string `json:"storeId"`
	StoreLocation string `json:"storeLocation"`
	SalespersonID string `json:"salespersonId"`
	EmployeeName  string `json:"employeeName"`
}

// Value returns the value of f: float64 for numeric fields, time.Time (or nil
// when unset) for the date, string otherwise. Unknown fields return nil.
func (r *SaleRecord) Value(f Field) any {
	switch f {
	case FieldTransactionID:
		return float64(r.TransactionID)
	case FieldDate:
		if r.Date == nil {
			return nil
		}
		return *r.Date
	case FieldCustomerID:
		return r.CustomerID
	case FieldCustomerName:
		return r.CustomerName
	case FieldPhoneNumber:
		return float64(r.PhoneNumber)
	case FieldGender:
		return r.Gender
	case FieldAge:
		return float64(r.Age)
	case FieldCustomerRegion:
		return r.CustomerRegion
	case FieldCustomerType:
		return r.CustomerType
	case FieldProductID:
		return r.ProductID
	case FieldProductName:
		return r.ProductName
	case FieldBrand:
		return r.Brand
	case FieldProductCategory:
		return r.ProductCategory
	case FieldTags:
		return r.Tags
	case FieldQuantity:
		return float64(r.Quantity)
	case FieldPricePerUnit:
		return float64(r.PricePerUnit)
	case FieldDiscountPercentage:
		return float64(r.DiscountPercentage)
	case FieldTotalAmount:
		return float64(r.TotalAmount)
	case FieldFinalAmount:
		return float64(r.FinalAmount)
	case FieldPaymentMethod:
		return r.PaymentMethod
	case FieldOrderStatus:
		return r.OrderStatus
	case FieldDeliveryType:
		return r.DeliveryType
	case FieldStoreID:
		return r.StoreID
	case FieldStoreLocation:
		return r.StoreLocation
	case FieldSalespersonID:
		return r.SalespersonID
	case FieldEmployeeName:
		return r.EmployeeName
	}
	return nil
}

// Values returns the record aligned to Columns(), ready for a bulk COPY.
func (r *SaleRecord) Values() []any {
	out := make([]any, len(Fields))
	for i, f := range Fields {
		if f.Name == FieldDate {
			out[i] = r.Date
			continue
		}
		out[i] = r.Value(f.Name)
	}
	return out
}

// ScanTargets returns pointers to every field aligned to Columns(), for use
// with a row scanner.
func (r *SaleRecord) ScanTargets() []any {
	return []any{
		&r.TransactionID, &r.Date,
		&r.CustomerID, &r.CustomerName, &r.PhoneNumber, &r.Gender, &r.Age, &r.CustomerRegion, &r.CustomerType,
		&r.ProductID, &r.ProductName, &r.Brand, &r.ProductCategory, &r.Tags,
		&r.Quantity, &r.PricePerUnit, &r.DiscountPercentage, &r.TotalAmount, &r.FinalAmount,
		&r.PaymentMethod, &r.OrderStatus, &r.DeliveryType,
		&r.StoreID, &r.StoreLocation, &r.SalespersonID, &r.EmployeeName,
	}
}
