package prompts

const DataAPI = `DATABASE API:

A value named db is available to every script. It wraps one read/write transaction
on a SQLite database with this table:

    CREATE TABLE messages (
        id          INTEGER PRIMARY KEY,
        timestamp   TEXT,    -- "YYYY-MM-DD HH:MM:SS", UTC
        from_email  TEXT,
        from_name   TEXT,
        to_email    TEXT,
        to_name     TEXT,
        subject     TEXT,
        content     TEXT,
        links       TEXT,    -- comma separated URLs
        attachments TEXT,    -- comma separated file names
        message_id  TEXT,
        thread_id   TEXT
    );

Methods (pass query parameters as extra arguments, never format them into the SQL):

    db.query(sql, *args)        -> list of tuples, one per row
    db.query_one(sql, *args)    -> the first row as a tuple, or None
    db.query_dicts(sql, *args)  -> list of dicts keyed by column name; links and
                                   attachments come back as lists of strings
    db.execute(sql, *args)      -> number of rows affected
    db.summary()                -> {"message_count": int, "sender_count": int,
                                    "first": str, "last": str}

DISPLAY FUNCTIONS:

    title(text)  header(text)  write(*values)  markdown(text)  code(text)
    info(text)  success(text)  warning(text)  error(text)
    metric(label, value)
    table(rows, columns = None)   -- rows: list of lists/tuples, or list of dicts
    json(value)                   -- pretty printed JSON
    print(*values)                -- same as write

MODULES:

    time   -- time.now(), time.parse_time(s), t.year, t.month, t.day, t - u
    math   -- math.floor, math.ceil, math.round, math.sqrt, ...
`
