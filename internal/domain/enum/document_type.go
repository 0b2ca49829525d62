package enum

// DocumentType identifies a numbered business document. The value is the
// prefix printed on the document number.
type DocumentType string

const (
	DocumentTypeSale        DocumentType = "INV"
	DocumentTypeSaleReturn  DocumentType = "RET"
	DocumentTypeManufacture DocumentType = "MFG"
	DocumentTypeTransfer    DocumentType = "TRF"
	DocumentTypePurchase    DocumentType = "PUR"
	DocumentTypeAdjustment  DocumentType = "ADJ"
)

func (t DocumentType) String() string {
	return string(t)
}

// Prefix is the leading part of the formatted document number
func (t DocumentType) Prefix() string {
	return string(t)
}
