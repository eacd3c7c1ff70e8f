package book

import "github.com/mawule-gabriel/TestingLibrary/model"

type CreateBookReq struct {
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	PublicationYear int    `json:"publication_year" validate:"required"`
	Genre           string `json:"genre"`
	ISBN            string `json:"isbn"`
}

func (r CreateBookReq) toModel() *model.Book {
	return &model.Book{
		Title:           r.Title,
		Author:          r.Author,
		PublicationYear: r.PublicationYear,
		Genre:           r.Genre,
		Status:          model.BookAvailable,
		ISBN:            r.ISBN,
	}
}

type UpdateStatusReq struct {
	Status string `json:"status" validate:"required"`
}
