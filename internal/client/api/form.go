package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// File описывает файловую часть multipart формы.
// Open вызывается на каждую попытку отправки.
type File struct {
	Open func() (io.ReadCloser, error)
	Name string
	Size int64
}

// FileFromPath создает File, читающий файл с диска
func FileFromPath(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &File{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FileFromBytes создает File из данных в памяти
func FileFromBytes(name string, data []byte) *File {
	return &File{
		Name: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

type formField struct {
	file  *File
	name  string
	value string
}

// Form multipart/form-data тело запроса. Порядок полей сохраняется.
type Form struct {
	fields []formField
}

// NewForm создает пустую форму
func NewForm() *Form {
	return &Form{}
}

// Field добавляет текстовое поле
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// File добавляет файловую часть; nil пропускается (необязательные файлы)
func (f *Form) File(name string, file *File) *Form {
	if file == nil {
		return f
	}
	f.fields = append(f.fields, formField{name: name, file: file})
	return f
}

// Fields возвращает имена полей в порядке добавления
func (f *Form) Fields() []string {
	names := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		names = append(names, field.name)
	}
	return names
}

// encode стримит форму через pipe, чтобы большие видеофайлы не держать в памяти
func (f *Form) encode() (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(f.write(mw))
	}()

	return pr, mw.FormDataContentType()
}

func (f *Form) write(mw *multipart.Writer) error {
	for _, field := range f.fields {
		if field.file == nil {
			if err := mw.WriteField(field.name, field.value); err != nil {
				return fmt.Errorf("failed to write field %s: %w", field.name, err)
			}
			continue
		}

		part, err := mw.CreateFormFile(field.name, field.file.Name)
		if err != nil {
			return fmt.Errorf("failed to create part %s: %w", field.name, err)
		}
		rc, err := field.file.Open()
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", field.file.Name, err)
		}
		_, err = io.Copy(part, rc)
		_ = rc.Close()
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", field.file.Name, err)
		}
	}
	return mw.Close()
}
