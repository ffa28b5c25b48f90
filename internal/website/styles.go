package website

import (
	"fmt"
	"sort"
	"strings"
)

// LightColors is the default palette.
var LightColors = map[string]string{
	"bg":        "#FCFCF9",
	"bgAlt":     "#FFFFFD",
	"surface":   "#F5F5F0",
	"text":      "#13343B",
	"textMuted": "#626C71",
	"border":    "#E5E7EB",

	"primary":      "#21808D",
	"primaryHover": "#1D7480",
	"secondary":    "#5E5240",

	"success": "#21808D",
	"error":   "#C0152F",
	"warning": "#A84B2F",

	// rgb triplets feed rgba() in inline styles
	"slate-900-rgb": "252, 252, 249",
}

// DarkColors apply when the document carries data-color-scheme="dark".
var DarkColors = map[string]string{
	"bg":        "#1F2121",
	"bgAlt":     "#262828",
	"surface":   "#2A2C2C",
	"text":      "#F5F5F5",
	"textMuted": "#A7A9A9",
	"border":    "#3A3D3D",

	"primary":      "#32B8C6",
	"primaryHover": "#2DA6B2",
	"secondary":    "#D4C7AE",

	"success": "#32B8C6",
	"error":   "#FF5459",
	"warning": "#E68161",

	"slate-900-rgb": "19, 52, 59",
}

// Typography uses system font stack for instant loading
var FontFamily = `system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif`
var FontMono = `'SF Mono', SFMono-Regular, ui-monospace, 'DejaVu Sans Mono', Menlo, Consolas, monospace`

// RenderStyles generates the complete CSS for the portfolio page. The dark
// palette applies under [data-color-scheme="dark"].
func RenderStyles() string {
	var sb strings.Builder
	sb.WriteString(cssReset())
	sb.WriteString(cssVariables(":root", LightColors))
	sb.WriteString(cssVariables(`[data-color-scheme="dark"]`, DarkColors))
	sb.WriteString(cssBase())
	sb.WriteString(cssLayout())
	sb.WriteString(cssNavbar())
	sb.WriteString(cssHero())
	sb.WriteString(cssSections())
	sb.WriteString(cssSkills())
	sb.WriteString(cssProjects())
	sb.WriteString(cssContact())
	sb.WriteString(cssButtons())
	sb.WriteString(cssAnimations())
	sb.WriteString(cssAccessibility())
	sb.WriteString(cssResponsive())
	return sb.String()
}

func cssReset() string {
	return `
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
html{-webkit-text-size-adjust:100%;tab-size:4}
body{line-height:1.6;-webkit-font-smoothing:antialiased;-moz-osx-font-smoothing:grayscale}
img,picture,video,canvas,svg{display:block;max-width:100%}
input,button,textarea,select{font:inherit}
p,h1,h2,h3,h4,h5,h6{overflow-wrap:break-word}
a{color:inherit;text-decoration:none}
ul,ol{list-style:none}
`
}

// cssVariables emits the palette sorted by name so the stylesheet is stable.
func cssVariables(selector string, colors map[string]string) string {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]string, 0, len(names)+2)
	for _, name := range names {
		vars = append(vars, fmt.Sprintf("--color-%s:%s", name, colors[name]))
	}
	if selector == ":root" {
		vars = append(vars, "--font-sans:"+FontFamily, "--font-mono:"+FontMono)
	}
	return fmt.Sprintf("%s{%s}\n", selector, strings.Join(vars, ";"))
}

func cssBase() string {
	return `
body{font-family:var(--font-sans);background:var(--color-bg);color:var(--color-text);min-height:100vh;transition:background 0.3s ease,color 0.3s ease}
h1{font-size:clamp(2rem,5vw,3.5rem);font-weight:800;line-height:1.1}
h2{font-size:clamp(1.5rem,3vw,2.25rem);font-weight:700;line-height:1.2}
h3{font-size:1.125rem;font-weight:600}
p{color:var(--color-textMuted)}
code,pre{font-family:var(--font-mono);font-size:0.9em}
pre{padding:0.75rem;border-radius:0.5rem;overflow-x:auto}
`
}

func cssLayout() string {
	return `
.container{width:100%;max-width:1200px;margin:0 auto;padding:0 1rem}
section{padding:4rem 0}
.section-title{text-align:center;margin-bottom:2.5rem}
.grid{display:grid;gap:1.5rem;grid-template-columns:1fr}
`
}

func cssNavbar() string {
	return `
.navbar{position:fixed;top:0;left:0;right:0;z-index:100;padding:1rem 0;background:rgba(var(--color-slate-900-rgb),0.95);backdrop-filter:blur(10px);border-bottom:1px solid var(--color-border);transition:background 0.3s ease}
.nav-container{display:flex;align-items:center;justify-content:space-between}
.nav-logo{font-size:1.25rem;font-weight:800;color:var(--color-primary)}
.nav-menu{display:none;gap:1.5rem}
.nav-menu.active{display:flex;flex-direction:column;position:absolute;top:100%;left:0;right:0;padding:1rem;background:var(--color-bgAlt)}
.nav-link{color:var(--color-textMuted);font-weight:500;transition:color 0.2s ease}
.nav-link:hover,.nav-link.active{color:var(--color-primary)}
.nav-actions{display:flex;align-items:center;gap:0.75rem}
.theme-toggle,.nav-toggle{background:none;border:none;cursor:pointer;color:var(--color-text);font-size:1.1rem;transition:transform 0.2s ease}
.nav-toggle span{display:block;width:22px;height:2px;margin:4px 0;background:var(--color-text);transition:all 0.3s ease}
.nav-toggle.active span:nth-child(1){transform:rotate(45deg) translate(5px,5px)}
.nav-toggle.active span:nth-child(2){opacity:0}
.nav-toggle.active span:nth-child(3){transform:rotate(-45deg) translate(5px,-5px)}
`
}

func cssHero() string {
	return `
.hero{position:relative;min-height:100vh;display:flex;align-items:center;overflow:hidden;padding-top:5rem}
.hero-particles{position:absolute;inset:0;pointer-events:none}
.hero-content{position:relative;text-align:center;margin:0 auto}
.profile-img{width:160px;height:160px;border-radius:50%;margin:0 auto 1.5rem;object-fit:cover;opacity:0;transition:opacity 0.6s ease}
.profile-img.loaded{opacity:1}
.typing-text{border-right:3px solid var(--color-primary);padding-right:4px;white-space:nowrap}
.hero-subtitle{font-size:1.25rem;margin:1rem 0}
.hero-tagline{max-width:600px;margin:0 auto 2rem}
.hero-actions{display:flex;gap:1rem;justify-content:center;flex-wrap:wrap}
`
}

func cssSections() string {
	return `
.about-content{max-width:800px;margin:0 auto 2rem}
.about-content p{margin-bottom:1rem}
.highlight-item,.achievement-card{padding:1.5rem;border-radius:1rem;background:var(--color-bgAlt);border:1px solid var(--color-border);text-align:center}
.highlight-item i,.achievement-card i{font-size:2rem;color:var(--color-primary);margin-bottom:0.75rem}
.footer{padding:2rem 0;text-align:center;border-top:1px solid var(--color-border)}
.social-links{display:flex;gap:1rem;justify-content:center;margin-bottom:1rem}
.social-links a{font-size:1.25rem;color:var(--color-textMuted)}
.social-links a:hover{color:var(--color-primary)}
`
}

func cssSkills() string {
	return `
.skill-category{padding:1.5rem;border-radius:1rem;background:var(--color-bgAlt);border:1px solid var(--color-border)}
.skill-category h3{margin-bottom:1rem}
.skill-item{margin-bottom:1rem}
.skill-info{display:flex;justify-content:space-between;margin-bottom:0.35rem;font-size:0.9rem}
.skill-bar{height:8px;border-radius:4px;background:var(--color-surface);overflow:hidden}
.skill-progress{height:100%;width:0;border-radius:4px;background:var(--color-primary);transition:width 1s ease-out}
`
}

func cssProjects() string {
	return `
.project-filters{display:flex;gap:0.75rem;justify-content:center;flex-wrap:wrap;margin-bottom:2rem}
.filter-btn{padding:0.5rem 1.25rem;border-radius:9999px;border:1px solid var(--color-border);background:transparent;color:var(--color-text);cursor:pointer;transition:all 0.2s ease}
.filter-btn.active,.filter-btn:hover{background:var(--color-primary);border-color:var(--color-primary);color:#FFFFFF}
.project-card{padding:1.5rem;border-radius:1rem;background:var(--color-bgAlt);border:1px solid var(--color-border)}
.project-icon{font-size:2rem;color:var(--color-primary);margin-bottom:0.75rem}
.project-tags{display:flex;gap:0.5rem;flex-wrap:wrap;margin:1rem 0}
.project-tag{font-size:0.75rem;padding:0.2rem 0.6rem;border-radius:9999px;background:var(--color-surface)}
`
}

func cssContact() string {
	return `
.contact-grid{display:grid;gap:2rem;grid-template-columns:1fr}
.contact-item{display:flex;align-items:center;gap:1rem;margin-bottom:1rem}
.contact-item i{font-size:1.25rem;color:var(--color-primary)}
.contact-form-wrapper{padding:1.5rem;border-radius:1rem;background:var(--color-bgAlt);border:1px solid var(--color-border)}
.form-group{position:relative;margin-bottom:1.25rem}
.form-group label{display:block;margin-bottom:0.35rem;font-size:0.9rem;color:var(--color-textMuted);transition:color 0.2s ease}
.form-group.focused label{color:var(--color-primary)}
.form-control{width:100%;padding:0.75rem;border-radius:0.5rem;border:1px solid var(--color-border);background:var(--color-surface);color:var(--color-text)}
.form-group.focused .form-control{border-color:var(--color-primary)}
textarea.form-control{min-height:140px;resize:vertical}
`
}

func cssButtons() string {
	return `
.btn{display:inline-flex;align-items:center;justify-content:center;gap:0.5rem;padding:0.75rem 1.5rem;font-weight:600;border-radius:0.5rem;border:none;cursor:pointer;transition:all 0.2s ease;min-height:2.75rem}
.btn:disabled{opacity:0.7;cursor:not-allowed}
.btn-primary{background:var(--color-primary);color:#FFFFFF}
.btn-primary:hover{background:var(--color-primaryHover);transform:translateY(-2px)}
.btn-outline{background:transparent;color:var(--color-primary);border:2px solid var(--color-primary)}
`
}

func cssAnimations() string {
	return `
.fade-in{opacity:0;transform:translateY(30px);transition:opacity 0.6s ease,transform 0.6s ease}
.slide-in-left{opacity:0;transform:translateX(-50px);transition:opacity 0.6s ease,transform 0.6s ease}
.slide-in-right{opacity:0;transform:translateX(50px);transition:opacity 0.6s ease,transform 0.6s ease}
.scale-in{opacity:0;transform:scale(0.9);transition:opacity 0.6s ease,transform 0.6s ease}
.fade-in.visible,.slide-in-left.visible,.slide-in-right.visible,.scale-in.visible{opacity:1;transform:none}
.particle{position:absolute;width:4px;height:4px;border-radius:50%;background:var(--color-primary);opacity:0.6;animation-name:float-particle;animation-iteration-count:infinite;animation-timing-function:ease-in-out}
@keyframes float-particle{0%,100%{transform:translateY(0) translateX(0);opacity:0.6}50%{transform:translateY(-20px) translateX(10px);opacity:1}}
.loading{position:fixed;inset:0;z-index:9999;display:flex;align-items:center;justify-content:center;background:var(--color-bg);transition:opacity 0.5s ease,visibility 0.5s ease}
body.loaded .loading{opacity:0;visibility:hidden}
.spinner{width:48px;height:48px;border:4px solid var(--color-border);border-top-color:var(--color-primary);border-radius:50%;animation:spin 1s linear infinite}
@keyframes spin{to{transform:rotate(360deg)}}
.notification{position:fixed;top:20px;right:20px;z-index:10000;max-width:300px;padding:1rem 1.25rem;border-radius:0.5rem;color:#FFFFFF;display:flex;align-items:center;gap:0.5rem;box-shadow:0 10px 30px rgba(0,0,0,0.2)}
@media(prefers-reduced-motion:reduce){*{animation-duration:0.01ms!important;animation-iteration-count:1!important;transition-duration:0.01ms!important}}
`
}

func cssAccessibility() string {
	return `
.sr-only{position:absolute;width:1px;height:1px;padding:0;margin:-1px;overflow:hidden;clip:rect(0,0,0,0);white-space:nowrap;border:0}
.skip-link{position:absolute;top:-40px;left:0;background:var(--color-primary);color:#FFFFFF;padding:0.5rem 1rem;z-index:1000;transition:top 0.3s;font-weight:600}
.skip-link:focus{top:0}
:focus-visible{outline:2px solid var(--color-primary);outline-offset:2px}
`
}

func cssResponsive() string {
	return `
@media(min-width:768px){
.container{padding:0 1.5rem}
.nav-menu{display:flex}
.nav-toggle{display:none}
.grid-2{grid-template-columns:repeat(2,1fr)}
.grid-3{grid-template-columns:repeat(3,1fr)}
.contact-grid{grid-template-columns:1fr 1.5fr}
section{padding:5rem 0}
}
`
}
