package ecommerce

import "github.com/erp/salesnorm/internal/domain/marketplace"

// newShopeeFinanceAdapter describes the Shopee "Income" report (order income sheet).
// Shopee exports fees as positive or negative depending on the report version, so they are
// always booked as debits. Shopee has no adjustment-type rows.
func newShopeeFinanceAdapter() *FinanceAdapter {
	return &FinanceAdapter{
		ColumnAdapter: ColumnAdapter{
			Platform: marketplace.PlatformShopee,
			Kind:     KindFinance,
			Columns: []Column{
				{FieldExternalID, []string{"Order ID", "หมายเลขคำสั่งซื้อ"}},
				{FieldSKU, []string{"SKU Reference No.", "Parent SKU Reference No.", "เลขอ้างอิง SKU (SKU Reference No.)", "เลขอ้างอิง SKU"}},
				{FieldOrderDate, []string{"Order Creation Date", "วันที่ทำการสั่งซื้อ"}},
				{FieldPaymentDate, []string{"Payout Completed Date", "วันที่โอนชำระเงินสำเร็จ", "วันที่ชำระเงิน"}},
				{FieldSubtotal, []string{"Original product price", "Product Price", "สินค้าราคาปกติ"}},
				{FieldSellerDiscount, []string{"Seller Product Promotion", "Your Product Discount", "ส่วนลดสินค้าจากผู้ขาย", "โปรโมชั่นสินค้าจากผู้ขาย"}},
				{FieldRefundSubtotal, []string{"Refund Amount", "Refund amount to buyer", "จำนวนเงินที่ทำการคืนให้ผู้ซื้อ", "จำนวนเงินคืน"}},
				{FieldShippingIncome, []string{"Shipping Fee Paid by Buyer", "ค่าจัดส่งที่ชำระโดยผู้ซื้อ"}},
				{FieldCommissionFee, []string{"Commission Fee", "ค่าคอมมิชชั่น"}},
				{FieldServiceFee, []string{"Service Fee", "ค่าบริการ"}},
				{FieldTransactionFee, []string{"Transaction Fee", "Payment Fee", "ค่าธรรมเนียมการชำระเงิน", "ค่าธุรกรรมการชำระเงิน"}},
				{FieldShippingFee, []string{"Actual Shipping Fee", "Shipping Fee", "ค่าจัดส่งจริง", "ค่าจัดส่งที่ Shopee ชำระ"}},
				{FieldAffiliateFee, []string{"AMS Commission Fee", "ค่าคอมมิชชั่น AMS"}},
				{FieldSettlementAmount, []string{"Total Released Amount (฿)", "Total Released Amount", "จำนวนเงินทั้งหมดที่โอนแล้ว (฿)", "จำนวนเงินทั้งหมดที่โอนแล้ว"}},
			},
		},
		Revenue: []Term{
			{Field: FieldSubtotal, Sign: Plus},
			{Field: FieldSellerDiscount, Sign: Minus, Magnitude: true},
			{Field: FieldRefundSubtotal, Sign: Minus, Magnitude: true},
			{Field: FieldShippingIncome, Sign: Plus},
		},
		Fees: []Field{
			FieldCommissionFee,
			FieldServiceFee,
			FieldTransactionFee,
			FieldShippingFee,
			FieldAffiliateFee,
		},
		FeeSign: FeeAsDebit,
		Breakdown: []BreakdownGroup{
			{Name: "Product sales", Kind: BreakdownRevenue, Components: []Component{
				{Label: "Original product price", Term: Term{Field: FieldSubtotal, Sign: Plus}},
				{Label: "Shipping paid by buyer", Term: Term{Field: FieldShippingIncome, Sign: Plus}},
			}},
			{Name: "Discounts", Kind: BreakdownRevenue, Components: []Component{
				{Label: "Seller product promotion", Term: Term{Field: FieldSellerDiscount, Sign: Minus, Magnitude: true}},
			}},
			{Name: "Refunds", Kind: BreakdownRevenue, Components: []Component{
				{Label: "Refund amount", Term: Term{Field: FieldRefundSubtotal, Sign: Minus, Magnitude: true}},
			}},
			{Name: "Platform fees", Kind: BreakdownFee, Components: []Component{
				{Label: "Commission fee", Term: Term{Field: FieldCommissionFee, Sign: Plus}},
				{Label: "Service fee", Term: Term{Field: FieldServiceFee, Sign: Plus}},
				{Label: "Transaction fee", Term: Term{Field: FieldTransactionFee, Sign: Plus}},
			}},
			{Name: "Shipping", Kind: BreakdownFee, Components: []Component{
				{Label: "Actual shipping fee", Term: Term{Field: FieldShippingFee, Sign: Plus}},
			}},
			{Name: "Marketing", Kind: BreakdownFee, Components: []Component{
				{Label: "AMS commission", Term: Term{Field: FieldAffiliateFee, Sign: Plus}},
			}},
		},
	}
}

// newShopeeProductSalesAdapter describes the Shopee order export
func newShopeeProductSalesAdapter() *ProductSalesAdapter {
	return &ProductSalesAdapter{
		ColumnAdapter: ColumnAdapter{
			Platform: marketplace.PlatformShopee,
			Kind:     KindProductSales,
			Columns: []Column{
				{FieldOrderID, []string{"Order ID", "หมายเลขคำสั่งซื้อ"}},
				{FieldVariantCode, []string{"shopee_code", "SKU Reference No.", "เลขอ้างอิง SKU (SKU Reference No.)", "เลขอ้างอิง SKU", "Parent SKU Reference No."}},
				{FieldProductName, []string{"Product Name", "ชื่อสินค้า"}},
				{FieldVariantName, []string{"Variation Name", "ชื่อตัวเลือก"}},
				{FieldQuantity, []string{"Quantity", "จำนวน"}},
				{FieldReturnedQuantity, []string{"Returned quantity", "Return Quantity", "จำนวนที่ส่งคืน"}},
				{FieldRevenue, []string{"Deal Price", "Product Subtotal", "ราคาขายสุทธิ", "ราคาขาย"}},
				{FieldProvince, []string{"Province", "จังหวัด"}},
				{FieldOrderDate, []string{"Order Creation Date", "วันที่ทำการสั่งซื้อ"}},
			},
		},
	}
}
