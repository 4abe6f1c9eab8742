package models

// Field names a SaleRecord attribute by its JSON key.
type Field string

// FieldKind is the coercion class of a field.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindDate
)

const (
	FieldTransactionID      Field = "transactionId"
	FieldDate               Field = "date"
	FieldCustomerID         Field = "customerId"
	FieldCustomerName       Field = "customerName"
	FieldPhoneNumber        Field = "phoneNumber"
	FieldGender             Field = "gender"
	FieldAge                Field = "age"
	FieldCustomerRegion     Field = "customerRegion"
	FieldCustomerType       Field = "customerType"
	FieldProductID          Field = "productId"
	FieldProductName        Field = "productName"
	FieldBrand              Field = "brand"
	FieldProductCategory    Field = "productCategory"
	FieldTags               Field = "tags"
	FieldQuantity           Field = "quantity"
	FieldPricePerUnit       Field = "pricePerUnit"
	FieldDiscountPercentage Field = "discountPercentage"
	FieldTotalAmount        Field = "totalAmount"
	FieldFinalAmount        Field = "finalAmount"
	FieldPaymentMethod      Field = "paymentMethod"
	FieldOrderStatus        Field = "orderStatus"
	FieldDeliveryType       Field = "deliveryType"
	FieldStoreID            Field = "storeId"
	FieldStoreLocation      Field = "storeLocation"
	FieldSalespersonID      Field = "salespersonId"
	FieldEmployeeName       Field = "employeeName"
)

// FieldDef describes how a field is named in the CSV source and in the sales table.
type FieldDef struct {
	Name   Field
	Header string
	Column string
	Kind   FieldKind
}

// Fields lists every SaleRecord attribute in source column order.
var Fields = []FieldDef{
	{FieldTransactionID, "Transaction ID", "transaction_id", KindNumber},
	{FieldDate, "Date", "date", KindDate},
	{FieldCustomerID, "Customer ID", "customer_id", KindText},
	{FieldCustomerName, "Customer Name", "customer_name", KindText},
	{FieldPhoneNumber, "Phone Number", "phone_number", KindNumber},
	{FieldGender, "Gender", "gender", KindText},
	{FieldAge, "Age", "age", KindNumber},
	{FieldCustomerRegion, "Customer Region", "customer_region", KindText},
	{FieldCustomerType, "Customer Type", "customer_type", KindText},
	{FieldProductID, "Product ID", "product_id", KindText},
	{FieldProductName, "Product Name", "product_name", KindText},
	{FieldBrand, "Brand", "brand", KindText},
	{FieldProductCategory, "Product Category", "product_category", KindText},
	{FieldTags, "Tags", "tags", KindText},
	{FieldQuantity, "Quantity", "quantity", KindNumber},
	{FieldPricePerUnit, "Price per Unit", "price_per_unit", KindNumber},
	{FieldDiscountPercentage, "Discount Percentage", "discount_percentage", KindNumber},
	{FieldTotalAmount, "Total Amount", "total_amount", KindNumber},
	{FieldFinalAmount, "Final Amount", "final_amount", KindNumber},
	{FieldPaymentMethod, "Payment Method", "payment_method", KindText},
	{FieldOrderStatus, "Order Status", "order_status", KindText},
	{FieldDeliveryType, "Delivery Type", "delivery_type", KindText},
	{FieldStoreID, "Store ID", "store_id", KindText},
	{FieldStoreLocation, "Store Location", "store_location", KindText},
	{FieldSalespersonID, "Salesperson ID", "salesperson_id", KindText},
	{FieldEmployeeName, "Employee Name", "employee_name", KindText},
}

var fieldIndex = func() map[Field]FieldDef {
	m := make(map[Field]FieldDef, len(Fields))
	for _, f := range Fields {
		m[f.Name] = f
	}
	return m
}()

// LookupField returns the definition for name, or false if it is not a SaleRecord field.
func LookupField(name string) (FieldDef, bool) {
	def, ok := fieldIndex[Field(name)]
	return def, ok
}

// Columns returns the sales table columns in field order.
func Columns() []string {
	cols := make([]string, len(Fields))
	for i, f := range Fields {
		cols[i] = f.Column
	}
	return cols
}
