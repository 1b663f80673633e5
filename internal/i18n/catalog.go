package i18n

// Message catalog for the two supported locales. Keys are grouped by page.
// With exactly two locales a plain map is all the catalog needs.
var messages = map[Locale]map[string]string{
	LocaleZhCN: {
		"nav.language":  "语言",
		"nav.logout":    "退出登录",
		"nav.dashboard": "仪表盘",
		"nav.users":     "用户管理",

		"login.title":    "登录",
		"login.submit":   "登录",
		"login.to_register": "还没有账号？去注册",

		"register.title":  "注册",
		"register.submit": "注册",
		"register.to_login": "已有账号？去登录",

		"form.email":     "邮箱",
		"form.password":  "密码",
		"form.password2": "确认密码",

		"error.email_required":    "邮箱不能为空",
		"error.email_invalid":     "邮箱格式不正确",
		"error.password_required": "密码不能为空",
		"error.password_policy":   "密码至少 8 位，且需包含字母和数字",
		"error.password_mismatch": "两次密码不一致",
		"error.email_taken":       "该邮箱已被注册，请直接登录或更换邮箱",
		"error.invalid_credentials": "邮箱或密码错误",

		"flash.email_taken":      "邮箱已注册",
		"flash.register_success": "注册成功",
		"flash.logged_out":       "已退出登录",

		"dashboard.title":   "仪表盘",
		"dashboard.welcome": "欢迎回来",

		"users.title":       "用户管理",
		"users.placeholder": "用户管理功能即将上线",
	},
	LocaleEn: {
		"nav.language":  "Language",
		"nav.logout":    "Log out",
		"nav.dashboard": "Dashboard",
		"nav.users":     "Users",

		"login.title":    "Log in",
		"login.submit":   "Log in",
		"login.to_register": "No account yet? Register",

		"register.title":  "Register",
		"register.submit": "Register",
		"register.to_login": "Already have an account? Log in",

		"form.email":     "Email",
		"form.password":  "Password",
		"form.password2": "Confirm password",

		"error.email_required":    "Email is required",
		"error.email_invalid":     "Invalid email format",
		"error.password_required": "Password is required",
		"error.password_policy":   "Password must be at least 8 characters with a letter and a digit",
		"error.password_mismatch": "Passwords do not match",
		"error.email_taken":       "This email is already registered, please log in or use another one",
		"error.invalid_credentials": "Invalid email or password",

		"flash.email_taken":      "Email already registered",
		"flash.register_success": "Registration successful",
		"flash.logged_out":       "Logged out",

		"dashboard.title":   "Dashboard",
		"dashboard.welcome": "Welcome back",

		"users.title":       "Users",
		"users.placeholder": "User management is coming soon",
	},
}

// T translates a message key for the given locale.
// Unknown keys fall back to the default locale, then to the key itself so
// a missing translation is visible rather than blank.
func T(locale Locale, key string) string {
	if msg, ok := messages[locale][key]; ok {
		return msg
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}
