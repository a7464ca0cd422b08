package prompts

const Tips = `TIPS:
* When the customer says "I" or "me", identify them by their email address (above).
* Use parameters: db.query("... WHERE from_email = ?", address).
* Use LIKE with % wildcards for partial matches; LIKE is case-insensitive.
* Put each SQL statement on a single line.
* Handle empty results with info(...) instead of failing.
* Prefer table(...) for lists and metric(...) for single numbers.
* Dates are strings; compare them with substr(timestamp, 1, 10) for days.
* Keep scripts short. Do not define unused helpers.
`
