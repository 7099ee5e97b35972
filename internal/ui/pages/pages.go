// Package pages holds the HTML pages. Each page is an html/template file
// rendered inside layout.html and exposed as a templ.Component, so handlers
// render them through ui.Render like any other component.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ctxkeys"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

const defaultAppName = "Innova y Emprende"

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"price": model.FormatCents,
	"date": func(t time.Time) string {
		return t.Format("02/01/2006 15:04")
	},
}

var templates = mustParse()

func mustParse() map[string]*template.Template {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		panic(err)
	}

	parsed := make(map[string]*template.Template, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if name == "layout" {
			continue
		}
		parsed[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", file))
	}
	return parsed
}

// view is what every template sees: request identity from the context plus
// the page specific Data.
type view struct {
	Title     string
	AppName   string
	Path      string
	Session   *ctxkeys.Session
	CSRFToken string
	Nonce     string
	Flashes   []string
	Data      any
}

func page(name, title string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := templates[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}

		v := view{
			Title:     title,
			AppName:   defaultAppName,
			Path:      ctxkeys.URLPath(ctx),
			Session:   ctxkeys.GetSession(ctx),
			CSRFToken: ctxkeys.CSRFToken(ctx),
			Nonce:     templ.GetNonce(ctx),
			Flashes:   ctxkeys.Flashes(ctx),
			Data:      data,
		}
		if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.AppName != "" {
			v.AppName = cfg.AppName
		}

		return t.ExecuteTemplate(w, "layout", v)
	})
}

func Home(courses []*model.Course) templ.Component {
	return page("home", "", courses)
}

func Login() templ.Component {
	return page("login", "Iniciar sesión", nil)
}

func Register() templ.Component {
	return page("registrar", "Registrarse", nil)
}

func ForgotPassword() templ.Component {
	return page("recuperar", "Recuperar contraseña", nil)
}

func ResetPassword(token, email string) templ.Component {
	return page("restablecer", "Nueva contraseña", struct{ Token, Email string }{token, email})
}

func ResetInvalid() templ.Component {
	return page("restablecer_invalido", "Enlace no válido", nil)
}

func Dashboard(name string, courses []*model.Course) templ.Component {
	return page("dashboard", "Panel", struct {
		Name    string
		Courses []*model.Course
	}{name, courses})
}

func CreateCourse(uploadEnabled bool) templ.Component {
	return page("crear_curso", "Crear curso", struct{ UploadEnabled bool }{uploadEnabled})
}

func AddLesson(course *model.Course) templ.Component {
	return page("anadir_leccion", "Añadir lección", course)
}

func Course(course *model.Course, lessons []*model.Lesson, methods []*model.PaymentMethod) templ.Component {
	return page("curso", course.Title, struct {
		Course  *model.Course
		Lessons []*model.Lesson
		Methods []*model.PaymentMethod
	}{course, lessons, methods})
}

// Lesson renders content as trusted markup; it must come from the markdown
// renderer, which drops raw HTML.
func Lesson(lesson *model.Lesson, content string) templ.Component {
	return page("leccion", lesson.Title, struct {
		Lesson  *model.Lesson
		Content template.HTML
	}{lesson, template.HTML(content)})
}

func Purchases(records []*model.PurchaseRecord) templ.Component {
	return page("mis_compras", "Mis compras", records)
}

func NotFound() templ.Component {
	return page("not_found", "No encontrado", nil)
}
