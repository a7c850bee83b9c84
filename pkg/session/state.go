package session

import "github.com/blessedav/FINALGO/pkg/api"

// Transitions below never mutate the receiver's slices or pointers.

func (s State) withToken(token string) State {
	s.Token = token
	return s
}

func (s State) withBooks(books []api.Book) State {
	s.Books = copyBooks(books)
	return s
}

// withoutBook drops every book whose id equals id.
func (s State) withoutBook(id string) State {
	kept := make([]api.Book, 0, len(s.Books))
	for _, b := range s.Books {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.Books = kept
	return s
}

func (s State) withDraft(d Draft) State {
	s.Draft = d
	return s
}

func (s State) withCredentials(c Credentials) State {
	s.Auth = c
	return s
}

func (s State) withMode(m Mode) State {
	s.Mode = m
	return s
}

func (s State) toggledMode() State {
	if s.Mode == ModeLogin {
		s.Mode = ModeRegister
	} else {
		s.Mode = ModeLogin
	}
	return s
}

func (s State) viewing(book api.Book) State {
	s.Viewed = copyBook(book)
	return s
}

func (s State) closedView() State {
	s.Viewed = nil
	return s
}

// editing loads book into the draft and makes it the update target.
func (s State) editing(book api.Book) State {
	s.Editing = copyBook(book)
	s.Draft = Draft{
		Title:       book.Title,
		Author:      book.Author,
		Description: book.Description,
		Tags:        JoinTags(book.Tags),
	}
	return s
}

func (s State) canceledEdit() State {
	s.Editing = nil
	s.Draft = Draft{}
	return s
}

// loggedOut resets the whole session.
func (s State) loggedOut() State {
	return State{}
}

// clone deep-copies the parts of State callers could mutate.
func (s State) clone() State {
	s.Books = copyBooks(s.Books)
	if s.Viewed != nil {
		s.Viewed = copyBook(*s.Viewed)
	}
	if s.Editing != nil {
		s.Editing = copyBook(*s.Editing)
	}
	return s
}

func copyBooks(books []api.Book) []api.Book {
	if books == nil {
		return nil
	}
	out := make([]api.Book, len(books))
	for i, b := range books {
		out[i] = *copyBook(b)
	}
	return out
}

func copyBook(b api.Book) *api.Book {
	if b.Tags != nil {
		tags := make([]string, len(b.Tags))
		copy(tags, b.Tags)
		b.Tags = tags
	}
	return &b
}
