package showcase

type PortfolioItem struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
	Category    string `json:"category,omitempty" validate:"max=100"`
	ProjectURL  string `json:"project_url,omitempty" validate:"omitempty,url"`
	Order       int    `json:"order"`
	CreatedAt   int64  `json:"created_at"`
}

type Testimonial struct {
	ID            string `json:"id"`
	AuthorName    string `json:"author_name" validate:"required,max=200"`
	AuthorCompany string `json:"author_company,omitempty" validate:"max=200"`
	AuthorRole    string `json:"author_role,omitempty" validate:"max=200"`
	Quote         string `json:"quote" validate:"required,max=2000"`
	Rating        int    `json:"rating" validate:"gte=1,lte=5"`
	AvatarURL     string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Order         int    `json:"order"`
	CreatedAt     int64  `json:"created_at"`
}

type ClientLogo struct {
	ID         string `json:"id"`
	Name       string `json:"name" validate:"required,max=200"`
	LogoURL    string `json:"logo_url" validate:"required,url"`
	WebsiteURL string `json:"website_url,omitempty" validate:"omitempty,url"`
	Order      int    `json:"order"`
	CreatedAt  int64  `json:"created_at"`
}
