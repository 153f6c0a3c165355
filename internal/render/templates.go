package render

// sectionTemplates holds one template per section type plus the two page
// shells. Section templates receive a sectionData and must not emit anything
// outside their own <section> element so the preview wrapper stays the only
// difference between the two surfaces.
const sectionTemplates = `
{{define "page/public"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Store.Name}}</title>
<style>:root{--primary:{{color .Store.Theme.PrimaryColor}};--secondary:{{color .Store.Theme.SecondaryColor}};}body{font-family:'{{.Store.Theme.FontFamily}}',sans-serif;margin:0;}</style>
</head>
<body>
<main class="storefront">{{.Body}}</main>
</body>
</html>{{end}}

{{define "page/preview"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Store.Name}} (preview)</title>
<style>:root{--primary:{{color .Store.Theme.PrimaryColor}};--secondary:{{color .Store.Theme.SecondaryColor}};}body{font-family:'{{.Store.Theme.FontFamily}}',sans-serif;margin:0;}
.builder-section{position:relative;outline:1px dashed transparent;}
.builder-section:hover{outline-color:var(--primary);}
.builder-section--selected{outline:2px solid var(--primary);}
.builder-section--disabled{opacity:.4;}</style>
</head>
<body>
<main class="storefront storefront--preview">{{.Body}}</main>
</body>
</html>{{end}}

{{define "section/hero-banner"}}<section class="section section-hero" data-role="hero">
{{with prop .Section.Props "backgroundImage"}}<img class="hero-bg" src="{{mediaURL .}}" alt="">{{end}}
<div class="hero-inner">
<h1>{{prop .Section.Props "title"}}</h1>
<p class="hero-subtitle">{{rich .Section.Props "subtitle"}}</p>
{{if prop .Section.Props "showCta"}}<a class="btn btn-primary" href="{{href (prop .Section.Props "ctaLink")}}">{{prop .Section.Props "ctaText"}}</a>{{end}}
</div>
</section>{{end}}

{{define "section/featured-product"}}<section class="section section-featured-product">
<div class="featured-media">{{with prop .Section.Props "productImage"}}<img src="{{mediaURL .}}" alt="{{prop $.Section.Props "title"}}">{{end}}</div>
<div class="featured-copy">
<h2>{{prop .Section.Props "title"}}</h2>
<p>{{rich .Section.Props "description"}}</p>
<ul class="badge-row">{{range items .Section.Props "badges"}}<li class="badge">{{field . "text"}}</li>{{end}}</ul>
</div>
</section>{{end}}

{{define "section/product-grid"}}<section class="section section-product-grid" data-columns="{{prop .Section.Props "columns"}}" data-max="{{prop .Section.Props "maxProducts"}}" data-show-prices="{{prop .Section.Props "showPrices"}}">
<h2>{{prop .Section.Props "title"}}</h2>
<div class="product-grid" data-source="catalog"></div>
</section>{{end}}

{{define "section/collections"}}<section class="section section-collections">
<h2>{{prop .Section.Props "title"}}</h2>
<div class="collection-row">{{range items .Section.Props "collections"}}<a class="collection-card" href="{{href (field . "link")}}">
{{if field . "image"}}<img src="{{mediaURL (field . "image")}}" alt="{{field . "name"}}">{{end}}
<span>{{field . "name"}}</span>
</a>{{end}}</div>
</section>{{end}}

{{define "section/testimonials"}}<section class="section section-testimonials">
<h2>{{prop .Section.Props "title"}}</h2>
<div class="testimonial-row">{{range items .Section.Props "testimonials"}}<figure class="testimonial">
<blockquote>{{field . "quote"}}</blockquote>
<figcaption>{{field . "author"}}{{with field . "rating"}}<span class="rating" data-rating="{{.}}"></span>{{end}}</figcaption>
</figure>{{end}}</div>
</section>{{end}}

{{define "section/trust-badges"}}<section class="section section-trust-badges">
<ul class="trust-row">{{range items .Section.Props "badges"}}<li class="trust-badge" data-icon="{{field . "icon"}}">{{field . "text"}}</li>{{end}}</ul>
</section>{{end}}

{{define "section/stats-bar"}}<section class="section section-stats-bar">
<dl class="stats-row">{{range items .Section.Props "stats"}}<div class="stat"><dt>{{field . "label"}}</dt><dd>{{field . "value"}}</dd></div>{{end}}</dl>
</section>{{end}}

{{define "section/features"}}<section class="section section-features">
<h2>{{prop .Section.Props "title"}}</h2>
<div class="feature-grid">{{range items .Section.Props "features"}}<article class="feature-card" data-icon="{{field . "icon"}}">
<h3>{{field . "title"}}</h3>
<p>{{field . "description"}}</p>
</article>{{end}}</div>
</section>{{end}}

{{define "section/benefits-list"}}<section class="section section-benefits">
<h2>{{prop .Section.Props "title"}}</h2>
<ul class="benefit-list">{{range items .Section.Props "items"}}<li>{{.}}</li>{{end}}</ul>
</section>{{end}}

{{define "section/comparison-table"}}<section class="section section-comparison">
<h2>{{prop .Section.Props "title"}}</h2>
<table class="comparison-table"><thead><tr>{{range items .Section.Props "columns"}}<th>{{field . "name"}}</th>{{end}}</tr></thead>
<tbody><tr>{{range items .Section.Props "columns"}}<td><ul>{{range fieldItems . "rows"}}<li>{{.}}</li>{{end}}</ul></td>{{end}}</tr></tbody></table>
</section>{{end}}

{{define "section/how-it-works"}}<section class="section section-steps">
<h2>{{prop .Section.Props "title"}}</h2>
<ol class="step-list">{{range items .Section.Props "steps"}}<li class="step">
<h3>{{field . "title"}}</h3>
<p>{{field . "description"}}</p>
</li>{{end}}</ol>
</section>{{end}}

{{define "section/video-showcase"}}<section class="section section-video">
<h2>{{prop .Section.Props "title"}}</h2>
{{with prop .Section.Props "videoUrl"}}{{if .}}<video controls {{if prop $.Section.Props "autoplay"}}autoplay muted{{end}} src="{{mediaURL .}}"></video>{{end}}{{end}}
</section>{{end}}

{{define "section/faq"}}<section class="section section-faq">
<h2>{{prop .Section.Props "title"}}</h2>
{{range items .Section.Props "faqs"}}<details class="faq-item">
<summary>{{field . "question"}}</summary>
<p>{{field . "answer"}}</p>
</details>{{end}}
</section>{{end}}

{{define "section/newsletter-signup"}}<section class="section section-newsletter" style="--accent:{{color (printf "%v" (prop .Section.Props "accentColor"))}}">
<h2>{{prop .Section.Props "title"}}</h2>
<p>{{rich .Section.Props "subtitle"}}</p>
<form class="newsletter-form" method="post" action="#subscribe">
<input type="email" name="email" placeholder="you@example.com" required>
<button type="submit">{{prop .Section.Props "buttonText"}}</button>
</form>
</section>{{end}}

{{define "section/cta-banner"}}<section class="section section-cta" style="background-color:{{color (printf "%v" (prop .Section.Props "backgroundColor"))}}">
<h2>{{prop .Section.Props "title"}}</h2>
<a class="btn btn-primary" href="{{href (prop .Section.Props "buttonLink")}}">{{prop .Section.Props "buttonText"}}</a>
</section>{{end}}

{{define "section/footer-links"}}<section class="section section-footer">
<nav class="footer-links">{{range items .Section.Props "links"}}<a href="{{href (field . "url")}}">{{field . "label"}}</a>{{end}}</nav>
</section>{{end}}
`
