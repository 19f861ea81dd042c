package ecommerce

import "github.com/erp/salesnorm/internal/domain/marketplace"

// TikTok Shop record types that carry only an adjustment amount
const (
	TikTokRecordAdjustment   = "Adjustment"
	TikTokRecordAdjustmentTH = "ปรับยอด"
)

// newTikTokFinanceAdapter describes the TikTok Shop settlement ("Income") report.
// Fees are exported already negative.
func newTikTokFinanceAdapter() *FinanceAdapter {
	return &FinanceAdapter{
		ColumnAdapter: ColumnAdapter{
			Platform: marketplace.PlatformTikTok,
			Kind:     KindFinance,
			Columns: []Column{
				{FieldExternalID, []string{"Order/adjustment ID", "Order ID", "หมายเลขคำสั่งซื้อ/การปรับยอด", "หมายเลขคำสั่งซื้อ"}},
				{FieldSKU, []string{"SKU ID", "Seller SKU", "SKU"}},
				{FieldRecordType, []string{"Type", "Transaction type", "ประเภท"}},
				{FieldOrderDate, []string{"Order created time", "Order created date", "Created time", "วันที่สร้างคำสั่งซื้อ"}},
				{FieldPaymentDate, []string{"Order settled time", "Settled time", "Statement date", "วันที่ชำระเงิน", "วันที่ชำระ"}},
				{FieldSubtotal, []string{"Subtotal before discounts", "ยอดรวมย่อยก่อนส่วนลด"}},
				{FieldSellerDiscount, []string{"Seller discounts", "ส่วนลดจากผู้ขาย"}},
				{FieldRefundSubtotal, []string{"Refund subtotal after seller discounts", "ยอดคืนเงินหลังหักส่วนลดผู้ขาย"}},
				{FieldFeeTotal, []string{"Total fees", "ค่าธรรมเนียมทั้งหมด"}},
				{FieldTransactionFee, []string{"Transaction fee", "ค่าธรรมเนียมการทำธุรกรรม"}},
				{FieldCommissionFee, []string{"TikTok Shop commission fee", "Commission fee", "ค่าคอมมิชชั่น"}},
				{FieldShippingFee, []string{"Seller shipping fee", "Actual shipping fee", "ค่าจัดส่งของผู้ขาย"}},
				{FieldAffiliateFee, []string{"Affiliate Commission", "Affiliate partner commission", "ค่าคอมมิชชั่นพันธมิตร"}},
				{FieldServiceFee, []string{"SFP service fee", "Service fee", "ค่าบริการ"}},
				{FieldAdjustmentAmount, []string{"Adjustment amount", "จำนวนเงินที่ปรับ"}},
				{FieldSettlementAmount, []string{"Total settlement amount", "Settlement amount", "ยอดชำระทั้งหมด"}},
			},
		},
		Revenue: []Term{
			{Field: FieldSubtotal, Sign: Plus},
			{Field: FieldSellerDiscount, Sign: Minus, Magnitude: true},
			{Field: FieldRefundSubtotal, Sign: Minus, Magnitude: true},
		},
		FeeTotal: FieldFeeTotal,
		Fees: []Field{
			FieldTransactionFee,
			FieldCommissionFee,
			FieldShippingFee,
			FieldAffiliateFee,
			FieldServiceFee,
		},
		FeeSign:               FeeAsReported,
		AdjustmentRecordTypes: []string{TikTokRecordAdjustment, TikTokRecordAdjustmentTH},
		Breakdown: []BreakdownGroup{
			{Name: "Subtotal", Kind: BreakdownRevenue, Components: []Component{
				{Label: "Subtotal before discounts", Term: Term{Field: FieldSubtotal, Sign: Plus}},
			}},
			{Name: "Discounts", Kind: BreakdownRevenue, Components: []Component{
				{Label: "Seller discounts", Term: Term{Field: FieldSellerDiscount, Sign: Minus, Magnitude: true}},
			}},
			{Name: "Refunds", Kind: BreakdownRevenue, Components: []Component{
				{Label: "Refund subtotal", Term: Term{Field: FieldRefundSubtotal, Sign: Minus, Magnitude: true}},
			}},
			{Name: "Platform fees", Kind: BreakdownFee, Components: []Component{
				{Label: "Transaction fee", Term: Term{Field: FieldTransactionFee, Sign: Plus}},
				{Label: "Commission fee", Term: Term{Field: FieldCommissionFee, Sign: Plus}},
				{Label: "Service fee", Term: Term{Field: FieldServiceFee, Sign: Plus}},
			}},
			{Name: "Shipping", Kind: BreakdownFee, Components: []Component{
				{Label: "Seller shipping fee", Term: Term{Field: FieldShippingFee, Sign: Plus}},
			}},
			{Name: "Marketing", Kind: BreakdownFee, Components: []Component{
				{Label: "Affiliate commission", Term: Term{Field: FieldAffiliateFee, Sign: Plus}},
			}},
		},
	}
}

// newTikTokProductSalesAdapter describes the TikTok Shop order export
func newTikTokProductSalesAdapter() *ProductSalesAdapter {
	return &ProductSalesAdapter{
		ColumnAdapter: ColumnAdapter{
			Platform: marketplace.PlatformTikTok,
			Kind:     KindProductSales,
			Columns: []Column{
				{FieldOrderID, []string{"Order ID", "หมายเลขคำสั่งซื้อ"}},
				{FieldVariantCode, []string{"product_id", "SKU ID", "Seller SKU", "รหัส SKU"}},
				{FieldProductName, []string{"Product Name", "ชื่อสินค้า"}},
				{FieldVariantName, []string{"Variation", "ตัวเลือกสินค้า"}},
				{FieldQuantity, []string{"Quantity", "จำนวน"}},
				{FieldReturnedQuantity, []string{"Sku Quantity of return", "Quantity of return", "จำนวนที่คืน"}},
				{FieldRevenue, []string{"SKU Subtotal After Discount", "Order Amount", "ยอดรวมหลังส่วนลด"}},
				{FieldProvince, []string{"Province", "จังหวัด"}},
				{FieldOrderDate, []string{"Created Time", "Order created time", "วันที่สร้างคำสั่งซื้อ"}},
			},
		},
	}
}
