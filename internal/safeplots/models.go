// Copyright (c) SafePlots
// SPDX-License-Identifier: MPL-2.0

package safeplots

type PropertyType string

const (
	PropertyTypePlot     PropertyType = "plot"
	PropertyTypeHouse    PropertyType = "house"
	PropertyTypeFlat     PropertyType = "flat"
	PropertyTypeVilla    PropertyType = "villa"
	PropertyTypeFarmland PropertyType = "farmland"
)

type PropertyStatus string

const (
	PropertyPending   PropertyStatus = "pending"
	PropertyApproved  PropertyStatus = "approved"
	PropertyRejected  PropertyStatus = "rejected"
	PropertySold      PropertyStatus = "sold"
	PropertySuspended PropertyStatus = "suspended"
)

type SellerStatus string

const (
	SellerPending  SellerStatus = "pending"
	SellerApproved SellerStatus = "approved"
	SellerRejected SellerStatus = "rejected"
	SellerBanned   SellerStatus = "banned"
)

type InquiryStatus string

const (
	InquiryNew       InquiryStatus = "new"
	InquiryContacted InquiryStatus = "contacted"
	InquiryClosed    InquiryStatus = "closed"
)

type ReportStatus string

const (
	ReportPending          ReportStatus = "pending"
	ReportReviewed         ReportStatus = "reviewed"
	ReportFalseInformation ReportStatus = "false_information"
	ReportClosed           ReportStatus = "closed"
	ReportResolved         ReportStatus = "resolved"
	ReportDismissed        ReportStatus = "dismissed"
)

type ReportReason string

const (
	ReasonFraud         ReportReason = "fraud"
	ReasonIncorrectInfo ReportReason = "incorrect_info"
	ReasonDuplicate     ReportReason = "duplicate"
	ReasonSold          ReportReason = "sold"
	ReasonInappropriate ReportReason = "inappropriate"
	ReasonOther         ReportReason = "other"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Enumerations accepted by the API, in display order.
var (
	PropertyTypes    = []string{"plot", "house", "flat", "villa", "farmland"}
	PropertyStatuses = []string{"pending", "approved", "rejected", "sold", "suspended"}
	AreaUnits        = []string{"sqft", "sqm", "acre", "gunta", "cent"}
	IDProofTypes     = []string{"aadhar", "pan", "voter_id", "passport"}
	ReportReasons    = []string{"fraud", "incorrect_info", "duplicate", "sold", "inappropriate", "other"}
	ReportStatuses   = []string{"pending", "reviewed", "false_information", "closed", "resolved", "dismissed"}
	InquiryStatuses  = []string{"new", "contacted", "closed"}
	SortOrders       = []string{"newest", "price-low", "price-high", "popular"}
)

// IndianStates lists the states and union territories offered as filters.
var IndianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya", "Mizoram",
	"Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim", "Tamil Nadu",
	"Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand", "West Bengal",
	"Delhi", "Jammu and Kashmir", "Ladakh",
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Address     string       `json:"address"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Pincode     string       `json:"pincode"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Property struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Type           PropertyType   `json:"type"`
	Price          float64        `json:"price"`
	PriceOnRequest bool           `json:"priceOnRequest,omitempty"`
	Area           float64        `json:"area"`
	AreaUnit       string         `json:"areaUnit"`
	Location       Location       `json:"location"`
	Images         []string       `json:"images"`
	Video          string         `json:"video,omitempty"`
	Amenities      []string       `json:"amenities,omitempty"`
	Features       []string       `json:"features,omitempty"`
	SellerID       string         `json:"sellerId"`
	SellerName     string         `json:"sellerName,omitempty"`
	SellerPhone    string         `json:"sellerPhone,omitempty"`
	Status         PropertyStatus `json:"status"`
	IsVerified     bool           `json:"isVerified"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
	Views          int            `json:"views"`
	Inquiries      int            `json:"inquiries"`
	ReportCount    int            `json:"reportCount,omitempty"`
	RejectReason   string         `json:"rejectReason,omitempty"`
}

// PropertyPayload is the body for property create and update.
type PropertyPayload struct {
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Type           PropertyType `json:"type"`
	Price          float64      `json:"price"`
	PriceOnRequest bool         `json:"priceOnRequest"`
	Area           float64      `json:"area"`
	AreaUnit       string       `json:"areaUnit"`
	Location       Location     `json:"location"`
	Images         []string     `json:"images"`
	Video          string       `json:"video,omitempty"`
	Amenities      []string     `json:"amenities"`
	Features       []string     `json:"features"`
}

type Seller struct {
	ID              string       `json:"id"`
	UserID          string       `json:"userId"`
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	IDProofType     string       `json:"idProofType"`
	IDProofURL      string       `json:"idProofUrl"`
	Status          SellerStatus `json:"status"`
	IsVerified      bool         `json:"isVerified"`
	TotalProperties int          `json:"totalProperties"`
	TotalSold       int          `json:"totalSold"`
	Rating          float64      `json:"rating,omitempty"`
	CreatedAt       string       `json:"createdAt"`
	RejectReason    string       `json:"rejectReason,omitempty"`
}

// SellerRegistration is sent with snake_case keys.
type SellerRegistration struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IDProofType string `json:"id_proof_type"`
	IDProofURL  string `json:"id_proof_url"`
}

type Inquiry struct {
	ID            string        `json:"id"`
	PropertyID    string        `json:"propertyId"`
	PropertyTitle string        `json:"propertyTitle,omitempty"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName,omitempty"`
	UserEmail     string        `json:"userEmail,omitempty"`
	UserPhone     string        `json:"userPhone,omitempty"`
	SellerID      string        `json:"sellerId,omitempty"`
	Message       string        `json:"message"`
	Status        InquiryStatus `json:"status"`
	CreatedAt     string        `json:"createdAt"`
}

type InquiryPayload struct {
	PropertyID string `json:"propertyId"`
	Message    string `json:"message"`
}

type PropertyReport struct {
	ID            string       `json:"id"`
	PropertyID    string       `json:"propertyId"`
	PropertyTitle string       `json:"propertyTitle,omitempty"`
	ReporterID    string       `json:"reporterId,omitempty"`
	ReporterName  string       `json:"reporterName,omitempty"`
	Reason        ReportReason `json:"reason"`
	Description   string       `json:"description"`
	Status        ReportStatus `json:"status"`
	AdminNotes    string       `json:"adminNotes,omitempty"`
	CreatedAt     string       `json:"createdAt"`
	ResolvedAt    string       `json:"resolvedAt,omitempty"`
}

type ReportPayload struct {
	PropertyID  string       `json:"propertyId"`
	Reason      ReportReason `json:"reason"`
	Description string       `json:"description"`
}

// ReportUpdate is the admin resolution of a report.
type ReportUpdate struct {
	Status          ReportStatus `json:"status"`
	AdminNotes      string       `json:"adminNotes,omitempty"`
	SuspendProperty bool         `json:"suspendProperty,omitempty"`
}

type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Role          Role   `json:"role"`
	Status        string `json:"status,omitempty"`
	IsVerified    bool   `json:"isVerified"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
	CreatedAt     string `json:"createdAt"`
	LastLoginAt   string `json:"lastLoginAt,omitempty"`
}

// IsBanned reports whether the account is banned or suspended.
func (u *User) IsBanned() bool {
	return u != nil && (u.Status == "banned" || u.Status == "suspended")
}

type ProfileUpdate struct {
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

type PropertyView struct {
	PropertyID string `json:"propertyId"`
	UserID     string `json:"userId,omitempty"`
	ViewedAt   string `json:"viewedAt"`
}

type Activity struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	UserID      string `json:"userId"`
	UserName    string `json:"userName,omitempty"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

type AdminStats struct {
	TotalUsers                 int `json:"totalUsers"`
	TotalSellers               int `json:"totalSellers"`
	TotalProperties            int `json:"totalProperties"`
	PendingApprovals           int `json:"pendingApprovals"`
	PendingSellerVerifications int `json:"pendingSellerVerifications"`
	TotalInquiries             int `json:"totalInquiries"`
	PropertiesSold             int `json:"propertiesSold"`
	TotalReports               int `json:"totalReports"`
	BannedUsers                int `json:"bannedUsers"`
}

type SellerStats struct {
	TotalProperties   int `json:"totalProperties"`
	LiveProperties    int `json:"liveProperties"`
	PendingProperties int `json:"pendingProperties"`
	SoldProperties    int `json:"soldProperties"`
	TotalInquiries    int `json:"totalInquiries"`
	NewInquiries      int `json:"newInquiries"`
	TotalViews        int `json:"totalViews"`
}

type UserStats struct {
	SavedProperties  int `json:"savedProperties"`
	SentInquiries    int `json:"sentInquiries"`
	ViewedProperties int `json:"viewedProperties"`
}

type Upload struct {
	URL string `json:"url"`
}

type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}
