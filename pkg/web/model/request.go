package model

// 请求数据结构, 日期统一使用 2006-01-02 并按服务器本地时区解析
// pageSize 上限 1000, page 不设上限, 越界页返回空列表
type (
	PageReq struct {
		Page     int `query:"page"`
		PageSize int `query:"pageSize" vd:"$>=0&&$<=1000"`
	}

	// LoanFilterReq 借阅查询条件: date 与 overdue 二选一, overdue 优先
	LoanFilterReq struct {
		Page     int    `query:"page"`
		PageSize int    `query:"pageSize" vd:"$>=0&&$<=1000"`
		Date     string `query:"date"`
		Overdue  bool   `query:"overdue"`
	}

	BookReq struct {
		Title       string `json:"Title" vd:"len($)>0"`
		Author      string `json:"Author"`
		PublishDate string `json:"PublishDate"`
		ISBN        string `json:"ISBN" vd:"len($)>0"`
	}

	UserReq struct {
		Name    string  `json:"Name" vd:"len($)>0"`
		Address *string `json:"Address"`
		Email   string  `json:"Email" vd:"len($)>0"`
	}

	LoanReq struct {
		UserID     int64   `json:"UserId" vd:"$>0"`
		BookID     int64   `json:"BookId" vd:"$>0"`
		LoanDate   string  `json:"LoanDate" vd:"len($)>0"`
		ReturnDate *string `json:"ReturnDate"`
	}

	// ReturnReq 归还请求, 缺省为当天
	ReturnReq struct {
		ReturnDate string `json:"ReturnDate"`
	}

	ReviewReq struct {
		UserID int64 `json:"UserId" vd:"$>0"`
		BookID int64 `json:"BookId" vd:"$>0"`
		Rating int   `json:"Rating"`
	}

	RatingReq struct {
		Rating int `json:"Rating"`
	}
)
