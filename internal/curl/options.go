package curl

import (
	"strings"
)

type optKind int

const (
	optNone optKind = iota
	optVal
)

type optFn func(*draft, string)

type optDef struct {
	key  string
	kind optKind
	fn   optFn
}

var defs = map[string]*optDef{
	"request":        {key: "request", kind: optVal, fn: optReq},
	"get":            {key: "get", kind: optNone, fn: optGet},
	"head":           {key: "head", kind: optNone, fn: optHead},
	"header":         {key: "header", kind: optVal, fn: optHdr},
	"user-agent":     {key: "user-agent", kind: optVal, fn: optHdrKey(headerUserAgent)},
	"referer":        {key: "referer", kind: optVal, fn: optHdrKey(headerReferer)},
	"cookie":         {key: "cookie", kind: optVal, fn: optCookie},
	"data":           {key: "data", kind: optVal, fn: optData},
	"data-urlencode": {key: "data-urlencode", kind: optVal, fn: optDataURL},
	"json":           {key: "json", kind: optVal, fn: optJSON},
	"form":           {key: "form", kind: optVal, fn: optForm(false)},
	"form-string":    {key: "form-string", kind: optVal, fn: optForm(true)},
	"upload-file":    {key: "upload-file", kind: optVal, fn: optUpload},
	"url":            {key: "url", kind: optVal, fn: optURL},
	"location":       {key: "location", kind: optNone, fn: optLocation},
	"insecure":       {key: "insecure", kind: optNone, fn: optInsecure},
	"compressed":     {key: "compressed", kind: optNone, fn: optCompressed},
	"user":           {key: "user", kind: optVal, fn: optUser},
	"config":         {key: "config", kind: optVal, fn: optConfig},

	// recognised so their arguments are consumed, otherwise without effect
	"ignored":     {key: "ignored", kind: optNone},
	"ignored-val": {key: "ignored-val", kind: optVal},
}

var longDefs = map[string]*optDef{
	"request":        defs["request"],
	"get":            defs["get"],
	"head":           defs["head"],
	"header":         defs["header"],
	"user-agent":     defs["user-agent"],
	"referer":        defs["referer"],
	"cookie":         defs["cookie"],
	"data":           defs["data"],
	"data-ascii":     defs["data"],
	"data-raw":       defs["data"],
	"data-binary":    defs["data"],
	"data-urlencode": defs["data-urlencode"],
	"json":           defs["json"],
	"form":           defs["form"],
	"form-string":    defs["form-string"],
	"upload-file":    defs["upload-file"],
	"url":            defs["url"],
	"location":       defs["location"],
	"insecure":       defs["insecure"],
	"compressed":     defs["compressed"],
	"user":           defs["user"],
	"config":         defs["config"],

	"silent":                defs["ignored"],
	"show-error":            defs["ignored"],
	"verbose":               defs["ignored"],
	"include":               defs["ignored"],
	"remote-name":           defs["ignored"],
	"globoff":               defs["ignored"],
	"fail":                  defs["ignored"],
	"no-progress-meter":     defs["ignored"],
	"progress-bar":          defs["ignored"],
	"no-keepalive":          defs["ignored"],
	"no-buffer":             defs["ignored"],
	"retry-connrefused":     defs["ignored"],
	"location-trusted":      defs["ignored"],
	"http1.0":               defs["ignored"],
	"http1.1":               defs["ignored"],
	"http2":                 defs["ignored"],
	"http2-prior-knowledge": defs["ignored"],
	"http3":                 defs["ignored"],
	"ipv4":                  defs["ignored"],
	"ipv6":                  defs["ignored"],
	"tlsv1.2":               defs["ignored"],
	"tlsv1.3":               defs["ignored"],
	"output":                defs["ignored-val"],
	"dump-header":           defs["ignored-val"],
	"stderr":                defs["ignored-val"],
	"trace":                 defs["ignored-val"],
	"trace-ascii":           defs["ignored-val"],
	"write-out":             defs["ignored-val"],
	"max-time":              defs["ignored-val"],
	"connect-timeout":       defs["ignored-val"],
	"max-redirs":            defs["ignored-val"],
	"retry":                 defs["ignored-val"],
	"retry-delay":           defs["ignored-val"],
	"retry-max-time":        defs["ignored-val"],
	"proxy":                 defs["ignored-val"],
	"proxy-user":            defs["ignored-val"],
	"cacert":                defs["ignored-val"],
	"capath":                defs["ignored-val"],
	"cert":                  defs["ignored-val"],
	"key":                   defs["ignored-val"],
	"resolve":               defs["ignored-val"],
	"connect-to":            defs["ignored-val"],
	"interface":             defs["ignored-val"],
	"dns-servers":           defs["ignored-val"],
	"limit-rate":            defs["ignored-val"],
	"local-port":            defs["ignored-val"],
	"cookie-jar":            defs["ignored-val"],
}

var shortDefs = map[rune]*optDef{
	'X': defs["request"],
	'G': defs["get"],
	'I': defs["head"],
	'H': defs["header"],
	'A': defs["user-agent"],
	'e': defs["referer"],
	'b': defs["cookie"],
	'd': defs["data"],
	'F': defs["form"],
	'T': defs["upload-file"],
	'L': defs["location"],
	'k': defs["insecure"],
	'u': defs["user"],
	'K': defs["config"],

	's': defs["ignored"],
	'S': defs["ignored"],
	'v': defs["ignored"],
	'i': defs["ignored"],
	'O': defs["ignored"],
	'g': defs["ignored"],
	'f': defs["ignored"],
	'#': defs["ignored"],
	'N': defs["ignored"],
	'4': defs["ignored"],
	'6': defs["ignored"],
	'o': defs["ignored-val"],
	'D': defs["ignored-val"],
	'w': defs["ignored-val"],
	'm': defs["ignored-val"],
	'x': defs["ignored-val"],
	'U': defs["ignored-val"],
	'E': defs["ignored-val"],
	'c': defs["ignored-val"],
}

func applyOpt(d *draft, opt Opt) {
	def := defs[opt.Key]
	if def == nil || def.fn == nil {
		return
	}
	def.fn(d, opt.Val)
}

func optReq(d *draft, val string) {
	m := strings.ToUpper(strings.TrimSpace(val))
	if _, ok := knownMethods[m]; ok {
		d.method = m
	}
}

func optGet(d *draft, _ string) {
	d.getFlag = true
}

func optHead(d *draft, _ string) {
	d.method = MethodHead
}

func optHdr(d *draft, val string) {
	d.addHeader(val)
}

func optHdrKey(k string) optFn {
	return func(d *draft, val string) {
		if strings.TrimSpace(val) == "" {
			return
		}
		d.appendHeader(k, strings.TrimSpace(val))
	}
}

func optCookie(d *draft, val string) {
	if looksLikeCookieFile(val) {
		d.warn.Addf(WarnUnsupportedCookieFile, warnCookieFileFormat, val)
		return
	}
	if d.cookies == nil {
		d.cookies = parseCookies(val, CookieSourceFlag)
	}
}

func optData(d *draft, val string) {
	if isFileRef(val) {
		d.warn.Addf(WarnUnsupportedDataFile, warnDataFileFormat, strings.TrimPrefix(val, "@"))
		return
	}
	d.body.addData(val, false)
}

func optDataURL(d *draft, val string) {
	if isFileRef(val) {
		d.warn.Addf(WarnUnsupportedDataFile, warnDataFileFormat, strings.TrimPrefix(val, "@"))
		return
	}
	d.body.addData(val, true)
	d.body.force(BodyURLEncoded)
}

func optJSON(d *draft, val string) {
	if isFileRef(val) {
		d.warn.Addf(WarnUnsupportedDataFile, warnDataFileFormat, strings.TrimPrefix(val, "@"))
		return
	}
	d.body.addData(val, false)
	d.ensureHeader(headerContentType, mimeJSON)
	d.ensureHeader(headerAccept, mimeJSON)
}

func optForm(literal bool) optFn {
	return func(d *draft, val string) {
		d.body.addFormPart(parseMultipartItem(val, literal))
	}
}

func optUpload(d *draft, val string) {
	d.warn.Addf(WarnUnsupportedDataFile, warnUploadFormat, val)
}

func optURL(d *draft, val string) {
	if strings.TrimSpace(val) != "" {
		d.urls = append(d.urls, strings.TrimSpace(val))
	}
}

func optLocation(d *draft, _ string) {
	d.opts.FollowRedirects = true
}

func optInsecure(d *draft, _ string) {
	d.opts.InsecureTLS = true
	d.warn.Add(WarnInsecureTLS, warnInsecureMessage)
}

func optCompressed(d *draft, _ string) {
	d.opts.Compressed = true
}

func optUser(d *draft, val string) {
	user, pass, _ := strings.Cut(val, ":")
	d.opts.BasicAuth = &BasicAuth{User: user, Password: pass}
	d.appendHeader(headerAuthorization, buildBasicAuthHeader(user, pass))
}

func optConfig(d *draft, val string) {
	d.warn.Addf(WarnUnsupportedConfigFile, warnConfigFormat, val)
}

func isFileRef(val string) bool {
	return strings.HasPrefix(val, "@")
}

func looksLikeCookieFile(val string) bool {
	return strings.Contains(val, ".txt") ||
		strings.ContainsAny(val, `/\`)
}
