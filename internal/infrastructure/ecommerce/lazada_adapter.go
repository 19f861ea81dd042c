package ecommerce

import "github.com/erp/salesnorm/internal/domain/marketplace"

// newLazadaFinanceAdapter describes the Lazada income overview export.
// Fees are booked as debits; Lazada has no adjustment-type rows.
func newLazadaFinanceAdapter() *FinanceAdapter {
	return &FinanceAdapter{
		ColumnAdapter: ColumnAdapter{
			Platform: marketplace.PlatformLazada,
			Kind:     KindFinance,
			Columns: []Column{
				{FieldExternalID, []string{"Order No.", "Order Number", "orderNumber", "หมายเลขคำสั่งซื้อ"}},
				{FieldSKU, []string{"Seller SKU", "sellerSku", "Lazada SKU", "รหัส SKU ของผู้ขาย"}},
				{FieldOrderDate, []string{"Order Creation Date", "Order Date", "Transaction Date", "createTime", "วันที่สั่งซื้อ"}},
				{FieldPaymentDate, []string{"Release Date", "Payment Date", "วันที่โอนเงิน", "วันที่ชำระเงิน"}},
				{FieldSubtotal, []string{"Item Price Credit", "Item Price", "Unit Price", "ราคาสินค้า"}},
				{FieldSellerDiscount, []string{"Promotional Charges Vouchers", "Seller Voucher", "Seller Discount", "ส่วนลดจากผู้ขาย"}},
				{FieldRefundSubtotal, []string{"Reversal Item Price", "Refund Amount", "ยอดคืนเงิน"}},
				{FieldShippingIncome, []string{"Shipping Fee (Paid By Customer)", "ค่าส่งที่ลูกค้าชำระ"}},
				{FieldCommissionFee, []string{"Commission", "Commission Fee", "ค่าคอมมิชชั่น"}},
				{FieldTransactionFee, []string{"Payment Fee", "ค่าธรรมเนียมการชำระเงิน"}},
				{FieldServiceFee, []string{"Marketing Solution/Campaign Fee", "Service Fee", "ค่าบริการ"}},
				{FieldShippingFee, []string{"Shipping Fee Paid by Seller", "Shipping Fee Difference", "ค่าส่งที่ผู้ขายชำระ"}},
				{FieldAffiliateFee, []string{"Sponsored Affiliates", "Affiliate Commission", "ค่าคอมมิชชั่นพันธมิตร"}},
				{FieldSettlementAmount, []string{"Payout Amount", "Amount", "ยอดโอน"}},
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
			FieldTransactionFee,
			FieldServiceFee,
			FieldShippingFee,
			FieldAffiliateFee,
		},
		FeeSign: FeeAsDebit,
		Breakdown: []BreakdownGroup{
			{Name: "Item sales", Kind: BreakdownRevenue, Components: []Component{
				{Label: "Item price credit", Term: Term{Field: FieldSubtotal, Sign: Plus}},
				{Label: "Shipping paid by customer", Term: Term{Field: FieldShippingIncome, Sign: Plus}},
			}},
			{Name: "Vouchers", Kind: BreakdownRevenue, Components: []Component{
				{Label: "Seller vouchers", Term: Term{Field: FieldSellerDiscount, Sign: Minus, Magnitude: true}},
			}},
			{Name: "Refunds", Kind: BreakdownRevenue, Components: []Component{
				{Label: "Reversal item price", Term: Term{Field: FieldRefundSubtotal, Sign: Minus, Magnitude: true}},
			}},
			{Name: "Platform fees", Kind: BreakdownFee, Components: []Component{
				{Label: "Commission", Term: Term{Field: FieldCommissionFee, Sign: Plus}},
				{Label: "Payment fee", Term: Term{Field: FieldTransactionFee, Sign: Plus}},
			}},
			{Name: "Shipping", Kind: BreakdownFee, Components: []Component{
				{Label: "Shipping paid by seller", Term: Term{Field: FieldShippingFee, Sign: Plus}},
			}},
			{Name: "Marketing", Kind: BreakdownFee, Components: []Component{
				{Label: "Campaign fee", Term: Term{Field: FieldServiceFee, Sign: Plus}},
				{Label: "Sponsored affiliates", Term: Term{Field: FieldAffiliateFee, Sign: Plus}},
			}},
		},
	}
}

// newLazadaProductSalesAdapter describes the Lazada order export.
// Lazada lists one unit per order item row and has no quantity column.
func newLazadaProductSalesAdapter() *ProductSalesAdapter {
	return &ProductSalesAdapter{
		ColumnAdapter: ColumnAdapter{
			Platform: marketplace.PlatformLazada,
			Kind:     KindProductSales,
			Columns: []Column{
				{FieldOrderID, []string{"orderNumber", "Order Number", "Order No.", "หมายเลขคำสั่งซื้อ"}},
				{FieldVariantCode, []string{"lazada_code", "lazadaSku", "Lazada SKU", "sellerSku", "Seller SKU"}},
				{FieldProductName, []string{"itemName", "Item Name", "ชื่อสินค้า"}},
				{FieldVariantName, []string{"variation", "Variation", "ตัวเลือกสินค้า"}},
				{FieldQuantity, []string{"quantity", "Quantity", "จำนวน"}},
				{FieldRevenue, []string{"paidPrice", "Paid Price", "unitPrice", "ราคาที่ชำระ"}},
				{FieldProvince, []string{"shippingProvince", "Shipping Province", "shippingAddress3", "จังหวัด"}},
				{FieldOrderDate, []string{"createTime", "Created at", "Order Date", "วันที่สั่งซื้อ"}},
			},
		},
		UnitPerRow: true,
	}
}
